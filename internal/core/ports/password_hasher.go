package ports

// PasswordHasher hashes and verifies passwords with a one-way function.
type PasswordHasher interface {
	Hash(plaintext string, cost int) (string, error)
	Compare(hash, plaintext string) error
}

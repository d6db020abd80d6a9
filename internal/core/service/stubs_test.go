package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	order  []string
	byID   map[string]*domain.User
	seq    int
	writes int
	// createNil makes Create succeed without returning a record.
	createNil bool
	findErr   error
	// afterFind runs once FindByID has read the record, outside the lock.
	afterFind func(id string)
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	if r.findErr != nil {
		r.mu.Unlock()
		return nil, r.findErr
	}
	u := cloneUser(r.byID[id])
	hook := r.afterFind
	r.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if u := r.byID[id]; u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.createNil {
		return nil, nil
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	delete(r.byID, user.ID)
	for i, id := range r.order {
		if id == user.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubNoteRepo struct {
	mu     sync.Mutex
	order  []string
	byID   map[string]*domain.Note
	seq    int
	writes int
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{byID: make(map[string]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *stubNoteRepo) FindAll(_ context.Context) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Note, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneNote(r.byID[id]))
	}
	return out, nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneNote(r.byID[id]), nil
}

func (r *stubNoteRepo) find(match func(*domain.Note) bool) *domain.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if n := r.byID[id]; match(n) {
			return cloneNote(n)
		}
	}
	return nil
}

func (r *stubNoteRepo) FindByTitle(_ context.Context, title string) (*domain.Note, error) {
	return r.find(func(n *domain.Note) bool { return n.Title == title }), nil
}

func (r *stubNoteRepo) FindOneByUser(_ context.Context, userID string) (*domain.Note, error) {
	return r.find(func(n *domain.Note) bool { return n.User == userID }), nil
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.seq++
	clone := cloneNote(note)
	clone.ID = fmt.Sprintf("n%d", r.seq)
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneNote(clone), nil
}

func (r *stubNoteRepo) Save(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.byID[note.ID]; !ok {
		return nil, domain.ErrNoteNotFound
	}
	r.byID[note.ID] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *stubNoteRepo) Delete(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	delete(r.byID, note.ID)
	for i, id := range r.order {
		if id == note.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// stubHasher avoids bcrypt's cost in tests that don't inspect the hash.
type stubHasher struct {
	lastCost int
}

func (h *stubHasher) Hash(plaintext string, cost int) (string, error) {
	h.lastCost = cost
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Compare(hash, plaintext string) error {
	if !strings.HasPrefix(hash, "hashed:") || strings.TrimPrefix(hash, "hashed:") != plaintext {
		return errors.New("mismatch")
	}
	return nil
}

type stubCache struct {
	mu     sync.Mutex
	names  map[string]string
	getErr error
}

func newStubCache() *stubCache {
	return &stubCache{names: make(map[string]string)}
}

func (c *stubCache) Get(_ context.Context, id string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	name, ok := c.names[id]
	return name, ok, nil
}

func (c *stubCache) Set(_ context.Context, id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[id] = name
	return nil
}

func (c *stubCache) SetIfAbsent(_ context.Context, id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.names[id]; !ok {
		c.names[id] = name
	}
	return nil
}

func (c *stubCache) cached(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[id]
	return name, ok
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixture struct {
	users   *stubUserRepo
	notes   *stubNoteRepo
	hasher  *stubHasher
	cache   *stubCache
	userSvc *UserService
	noteSvc *NoteService
}

func newFixture() *fixture {
	f := &fixture{
		users:  newStubUserRepo(),
		notes:  newStubNoteRepo(),
		hasher: &stubHasher{},
		cache:  newStubCache(),
	}
	f.userSvc = NewUserService(f.users, f.notes, f.hasher, f.cache, discardLogger)
	f.noteSvc = NewNoteService(f.notes, f.users, f.cache, discardLogger)
	return f
}

func boolPtr(b bool) *bool { return &b }

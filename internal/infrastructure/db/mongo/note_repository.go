package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/technotes/notes-api/internal/core/domain"
)

const collectionNotes = "notes"

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// toNoteDocument fails only when the owner reference is not an ObjectID.
func toNoteDocument(n *domain.Note) (noteDocument, error) {
	owner, ok := objectID(n.User)
	if !ok {
		return noteDocument{}, domain.ErrUserNotFound
	}
	doc := noteDocument{
		User:      owner,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if oid, ok := objectID(n.ID); ok {
		doc.ID = oid
	}
	return doc, nil
}

func (d noteDocument) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.ID.Hex(),
		User:      d.User.Hex(),
		Title:     d.Title,
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FindAll returns every note in insertion order.
func (r *NoteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}

	var docs []noteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toDomain())
	}
	return notes, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *NoteRepository) FindByTitle(ctx context.Context, title string) (*domain.Note, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *NoteRepository) FindOneByUser(ctx context.Context, userID string) (*domain.Note, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"user": oid})
}

func (r *NoteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Note, error) {
	var doc noteDocument
	found, err := findOne(ctx, r.col, filter, &doc)
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	if !found {
		return nil, nil
	}
	return doc.toDomain(), nil
}

// Create inserts a new note document. A unique-index violation on title is
// reported as domain.ErrDuplicateNoteTitle.
func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	doc, err := toNoteDocument(n)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNoteTitle
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, nil
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// Save replaces the mutable fields of an existing note.
func (r *NoteRepository) Save(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	oid, ok := objectID(n.ID)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	doc, err := toNoteDocument(n)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"user":      doc.User,
		"title":     doc.Title,
		"text":      doc.Text,
		"completed": doc.Completed,
		"updatedAt": doc.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNoteTitle
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNoteNotFound
	}
	return n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, n *domain.Note) error {
	oid, ok := objectID(n.ID)
	if !ok {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

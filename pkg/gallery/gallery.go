// Package gallery provides persistent storage for saved plot documents.
//
// A gallery entry pairs a plot document with a stable identifier so plots
// can be re-rendered later with different styles or formats. Two backends
// are available:
//   - file: JSON files in a config directory, for CLI usage
//   - mongo: MongoDB collection, for the HTTP server
package gallery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/plotforge/plotforge/pkg/plotfile"
)

// Sentinel errors for gallery operations.
var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("gallery entry not found")
)

// Entry is a stored plot document.
type Entry struct {
	ID        string             `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Document  *plotfile.Document `json:"document" bson:"document"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for gallery storage backends.
type Store interface {
	// Get retrieves an entry by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Entry, error)

	// Put stores an entry, replacing any existing entry with the same ID.
	Put(ctx context.Context, entry *Entry) error

	// Delete removes an entry. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns all entries, newest first.
	List(ctx context.Context) ([]*Entry, error)

	// Close releases backend resources.
	Close() error
}

// New creates an entry for a document with a fresh ID.
func New(name string, doc *plotfile.Document) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

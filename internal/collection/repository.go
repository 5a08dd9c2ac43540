// Package collection provides read access to vocabulary collections and
// their items. Collection content is owned by the rest of the application;
// the review core only selects items out of it.
package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/collection/mock_repository.go -package=mock_collection

// Collection is a named set of vocabulary items owned by one learner.
type Collection struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Item is one vocabulary entry inside a collection.
type Item struct {
	ID           int64     `db:"id"`
	CollectionID int64     `db:"collection_id"`
	Term         string    `db:"term"`
	Meaning      string    `db:"meaning"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Repository defines read operations on collections.
type Repository interface {
	// Find returns the collection only when it exists and belongs to the
	// owner, nil otherwise.
	Find(ctx context.Context, ownerID, collectionID int64) (*Collection, error)
	// FindItems returns the collection's items in storage order.
	FindItems(ctx context.Context, collectionID int64) ([]Item, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns a collection scoped to its owner, or nil if not found.
// A collection owned by someone else is reported the same way as a missing
// one so ownership is not leaked.
func (r *DBRepository) Find(ctx context.Context, ownerID, collectionID int64) (*Collection, error) {
	var col Collection
	err := r.db.GetContext(ctx, &col,
		"SELECT * FROM collections WHERE id = ? AND owner_id = ?",
		collectionID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(collection) > %w", err)
	}
	return &col, nil
}

// FindItems returns all items of a collection in storage order.
func (r *DBRepository) FindItems(ctx context.Context, collectionID int64) ([]Item, error) {
	var items []Item
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM collection_items WHERE collection_id = ? ORDER BY id",
		collectionID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(collection_items) > %w", err)
	}
	return items, nil
}

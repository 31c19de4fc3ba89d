// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product row in the store.
// ID is assigned by the store on insert and is immutable afterwards.
type Product struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"`
	Size        string `db:"size"`
	Image       string `db:"image"`
	Price       int64  `db:"price"`
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindPage returns up to limit products, skipping the first skip rows,
	// in store-defined order. Returns an empty slice if no products exist.
	FindPage(ctx context.Context, limit, skip int) ([]Product, error)

	// Insert adds a new product and returns it with the assigned ID.
	Insert(ctx context.Context, p Product) (*Product, error)

	// Save overwrites all mutable fields of an existing product.
	// Returns ErrProductNotFound if no product exists with p.ID.
	Save(ctx context.Context, p *Product) error

	// Remove deletes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Remove(ctx context.Context, id int64) error
}

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens the sqlite database at the given path and verifies the connection.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// MigrateUp applies the embedded schema migrations to the database at url.
func MigrateUp(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+url)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// SqliteStore implements ProductStore backed by a sqlite database file.
type SqliteStore struct {
	db *sqlx.DB
}

// NewSqliteStore creates a new ProductStore over the given database handle.
func NewSqliteStore(db *sqlx.DB) *SqliteStore {
	return &SqliteStore{db: db}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *SqliteStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p,
		`SELECT id, name, description, color, size, image, price FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &p, nil
}

// FindPage retrieves up to limit products, skipping the first skip rows.
// No ORDER BY: the order is whatever the store returns.
func (s *SqliteStore) FindPage(ctx context.Context, limit, skip int) ([]Product, error) {
	products := make([]Product, 0, limit)
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, description, color, size, image, price FROM products LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to find products page: %w", err)
	}
	return products, nil
}

// Insert adds a new product and returns it with the store-assigned ID.
func (s *SqliteStore) Insert(ctx context.Context, p Product) (*Product, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, color, size, image, price) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Color, p.Size, p.Image, p.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted product ID: %w", err)
	}
	p.ID = id
	return &p, nil
}

// Save overwrites all mutable fields of an existing product.
// Returns ErrProductNotFound if no product exists with p.ID.
func (s *SqliteStore) Save(ctx context.Context, p *Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, color = ?, size = ?, image = ?, price = ? WHERE id = ?`,
		p.Name, p.Description, p.Color, p.Size, p.Image, p.Price, p.ID)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if count == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// Remove deletes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *SqliteStore) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if count == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// Package service implements the product request-handling pipeline: the
// ordered precondition checks, store calls and status-code selection that
// turn a request into a Result envelope.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/abgdnv/gocatalog/internal/platform/random"
	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/abgdnv/gocatalog/internal/product/storage"
	"github.com/abgdnv/gocatalog/internal/product/store"
)

// DefaultListLimit is used when a list request does not specify a limit.
const DefaultListLimit = 10

// ProductService defines the product operations exposed over HTTP.
// Domain failures (not found, missing image) are reported inside the Result;
// a non-nil error is an infrastructure failure the boundary reports as 500.
type ProductService interface {
	// GetByID fetches a product by its identifier.
	GetByID(ctx context.Context, id int64) (*Result, error)

	// List fetches up to limit products, skipping the first skip rows.
	// Never a domain failure: an empty store yields an empty slice.
	List(ctx context.Context, limit, skip int) (*Result, error)

	// Create inserts a new product after verifying the referenced image
	// exists in the static-file location.
	Create(ctx context.Context, in ProductInput) (*Result, error)

	// Update overwrites all mutable fields of an existing product. The row
	// existence check runs before the image check.
	Update(ctx context.Context, id int64, in ProductInput) (*Result, error)

	// Delete removes a product and returns a snapshot of the deleted row.
	Delete(ctx context.Context, id int64) (*Result, error)

	// UploadImage saves the uploaded content under a random-prefixed name
	// in the static-file location and returns the new filename.
	UploadImage(ctx context.Context, originalName string, file io.Reader) (*Result, error)
}

// ProductInput is the request body for create and update. All fields are required.
type ProductInput struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	Color       string `json:"color"       validate:"required"`
	Size        string `json:"size"        validate:"required"`
	Image       string `json:"image"       validate:"required"`
	Price       int64  `json:"price"       validate:"required,min=0"`
}

// ProductDto represents a product in responses.
type ProductDto struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
}

// Service implements ProductService over a ProductStore and a FileStore.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	repository store.ProductStore
	files      storage.FileStore
}

// NewService creates a new ProductService with the provided store and file storage.
func NewService(repository store.ProductStore, files storage.FileStore) *Service {
	return &Service{
		repository: repository,
		files:      files,
	}
}

// GetByID fetches a product by its identifier.
func (s *Service) GetByID(ctx context.Context, id int64) (*Result, error) {
	p, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return Failure(http.StatusNotFound, "Product doesn't exists"), nil
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return Success(http.StatusOK, "Product found", toDto(p)), nil
}

// List fetches a page of products. Out-of-range arguments fall back to the
// defaults (limit 10, skip 0).
func (s *Service) List(ctx context.Context, limit, skip int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	products, err := s.repository.FindPage(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	list := make([]ProductDto, len(products))
	for i, p := range products {
		list[i] = *toDto(&p)
	}
	return Success(http.StatusOK, "Products Fetched", list), nil
}

// Create inserts a new product. The referenced image must already be present
// in the static-file location.
func (s *Service) Create(ctx context.Context, in ProductInput) (*Result, error) {
	if !s.files.Exists(in.Image) {
		return Failure(http.StatusNotFound, "Product image doesn't exists, please upload first"), nil
	}
	created, err := s.repository.Insert(ctx, toRow(in))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return Success(http.StatusOK, "Product Added", toDto(created)), nil
}

// Update overwrites all mutable fields of an existing product. The row must
// exist (checked first) and the referenced image must be present. The
// returned data is the input as given, not a re-read of the persisted row.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (*Result, error) {
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return Failure(http.StatusNotFound, "Product not exists"), nil
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if !s.files.Exists(in.Image) {
		return Failure(http.StatusNotFound, "Product image doesn't exists, please upload first"), nil
	}

	updated := toRow(in)
	updated.ID = current.ID
	if err := s.repository.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return Success(http.StatusOK, "Product details updated", in), nil
}

// Delete removes a product by its identifier.
func (s *Service) Delete(ctx context.Context, id int64) (*Result, error) {
	p, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return Failure(http.StatusNotFound, "Product not exists"), nil
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if err := s.repository.Remove(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return Success(http.StatusOK, "Product Deleted", toDto(p)), nil
}

// UploadImage saves the uploaded content under "{random}_{originalName}".
// The random prefix only makes accidental overwrites unlikely; uniqueness is
// not guaranteed.
func (s *Service) UploadImage(_ context.Context, originalName string, file io.Reader) (*Result, error) {
	filename := random.Text(random.DefaultLength) + "_" + filepath.Base(originalName)
	if _, err := s.files.Save(filename, file); err != nil {
		return nil, fmt.Errorf("failed to save uploaded file %s: %w", filename, err)
	}
	return Success(http.StatusOK, "File Saved", filename), nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(p *store.Product) *ProductDto {
	return &ProductDto{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Size:        p.Size,
		Image:       p.Image,
		Price:       p.Price,
	}
}

// toRow converts a ProductInput to a store.Product without an ID.
func toRow(in ProductInput) store.Product {
	return store.Product{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Size:        in.Size,
		Image:       in.Image,
		Price:       in.Price,
	}
}

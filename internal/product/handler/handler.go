// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abgdnv/gocatalog/internal/platform/contextkeys"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ProductAPI defines HTTP handlers for product-related endpoints.
type ProductAPI interface {
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	DeleteByID(w http.ResponseWriter, r *http.Request)
	UploadImage(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

type api struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPI creates a new instance of ProductAPI with the provided service.
func NewAPI(service service.ProductService, logger *slog.Logger) ProductAPI {
	return &api{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "api"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func RegisterRoutes(mux *chi.Mux, a ProductAPI) {
	mux.Route("/api/products", func(r chi.Router) {
		r.Get("/", a.List)
		r.Post("/", a.Create)
		r.Post("/upload", a.UploadImage)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.GetByID)
			r.Put("/", a.Update)
			r.Delete("/", a.DeleteByID)
		})
	})

	mux.Get("/healthz", a.HealthCheck)
}

// GetByID retrieves a product by its ID.
func (a *api) GetByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to get product by ID", "ID", id)
	res, err := a.service.GetByID(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	respondResult(w, mLogger, res)
}

// List retrieves a page of products. Both query parameters are optional;
// limit defaults to 10 and skip to 0.
func (a *api) List(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)
	limit, ok := parseQueryInt(r, w, mLogger, "limit", service.DefaultListLimit)
	if !ok {
		return
	}
	skip, ok := parseQueryInt(r, w, mLogger, "skip", 0)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to list products", "limit", limit, "skip", skip)
	res, err := a.service.List(r.Context(), limit, skip)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondResult(w, mLogger, res)
}

// Create handles the creation of a new product.
func (a *api) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)
	in, ok := a.decodeInput(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create product", "product", in)
	res, err := a.service.Create(r.Context(), in)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	if res.Status {
		mLogger.InfoContext(r.Context(), "Product created successfully", "Name", in.Name)
	}
	respondResult(w, mLogger, res)
}

// Update overwrites all fields of an existing product.
func (a *api) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}
	in, ok := a.decodeInput(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	res, err := a.service.Update(r.Context(), id, in)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	if res.Status {
		mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", id)
	}
	respondResult(w, mLogger, res)
}

// DeleteByID deletes a product by its ID.
func (a *api) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	res, err := a.service.Delete(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	if res.Status {
		mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	}
	respondResult(w, mLogger, res)
}

// UploadImage stores an uploaded image file in the static-file location.
// The file is expected under the multipart form field "file".
func (a *api) UploadImage(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(r, a)

	file, header, err := r.FormFile("file")
	if err != nil {
		mLogger.WarnContext(r.Context(), "Missing or invalid multipart file field", "error", err)
		respondError(w, mLogger, http.StatusBadRequest, "file form field is required")
		return
	}
	defer func() { _ = file.Close() }()

	mLogger.DebugContext(r.Context(), "Received request to upload image", "filename", header.Filename, "size", header.Size)
	res, err := a.service.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error saving uploaded image", "filename", header.Filename, "error", err)
		respondError(w, mLogger, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}
	mLogger.InfoContext(r.Context(), "Image uploaded successfully", "filename", res.Data)
	respondResult(w, mLogger, res)
}

// HealthCheck is a simple health check endpoint.
func (a *api) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeInput decodes and validates the create/update request body.
func (a *api) decodeInput(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (service.ProductInput, bool) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		respondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if err := a.validate.Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			respondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return in, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		respondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	return in, true
}

// respondResult writes the envelope, relaying its http_code as the HTTP status.
func respondResult(w http.ResponseWriter, logger *slog.Logger, res *service.Result) {
	respondJSON(w, logger, res.HTTPCode, res)
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// parseID extracts and validates the product ID from the request path. Returns the ID and a boolean indicating success.
func parseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}

// parseQueryInt reads an optional non-negative integer query parameter,
// falling back to def when the parameter is absent.
func parseQueryInt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, def int) (int, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, true
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 0 {
		respondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return intValue, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func loggerWithReqID(r *http.Request, a *api) *slog.Logger {
	reqID, found := contextkeys.GetRequestID(r.Context())
	if !found {
		reqID = "unknown"
	}
	return a.logger.With("request_id", reqID)
}

package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	result *service.Result
	error  error

	uploadedName    string
	uploadedContent []byte
}

func (m *mockProductService) GetByID(_ context.Context, _ int64) (*service.Result, error) {
	return m.result, m.error
}

func (m *mockProductService) List(_ context.Context, _, _ int) (*service.Result, error) {
	return m.result, m.error
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductInput) (*service.Result, error) {
	return m.result, m.error
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductInput) (*service.Result, error) {
	return m.result, m.error
}

func (m *mockProductService) Delete(_ context.Context, _ int64) (*service.Result, error) {
	return m.result, m.error
}

func (m *mockProductService) UploadImage(_ context.Context, name string, file io.Reader) (*service.Result, error) {
	m.uploadedName = name
	m.uploadedContent, _ = io.ReadAll(file)
	return m.result, m.error
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var bottleDto = &service.ProductDto{
	ID:          1,
	Name:        "Water Bottle",
	Description: "Water bottle for daily use",
	Color:       "Black",
	Size:        "1L",
	Image:       "bottle.png",
	Price:       150,
}

const bottleDtoJSON = `{"id":1,"name":"Water Bottle","description":"Water bottle for daily use","color":"Black","size":"1L","image":"bottle.png","price":150}`

const bottleInputJSON = `{"name":"Water Bottle","description":"Water bottle for daily use","color":"Black","size":"1L","image":"bottle.png","price":150}`

func Test_ProductAPI_GetByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Product found", bottleDto),
			},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Product found","error":"","data":` + bottleDtoJSON + `}`,
		},
		{
			name: "Error - product not found",
			mockService: mockProductService{
				result: service.Failure(http.StatusNotFound, "Product doesn't exists"),
			},
			productID:    "999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"status":false,"http_code":404,"message":"Product doesn't exists","error":"","data":null}`,
		},
		{
			name: "Error - service error",
			mockService: mockProductService{
				error: errors.New("service unavailable"),
			},
			productID:    "2",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to retrieve product with ID 2"}`,
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product ID: abc"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewAPI(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.GetByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_List(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		query        string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products fetched",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Products Fetched", []service.ProductDto{*bottleDto}),
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Products Fetched","error":"","data":[` + bottleDtoJSON + `]}`,
		},
		{
			name: "Success - empty store",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Products Fetched", []service.ProductDto{}),
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Products Fetched","error":"","data":[]}`,
		},
		{
			name: "Success - explicit limit and skip",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Products Fetched", []service.ProductDto{}),
			},
			query:        "?limit=5&skip=2",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Products Fetched","error":"","data":[]}`,
		},
		{
			name:         "Error - invalid limit",
			mockService:  mockProductService{},
			query:        "?limit=abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit number: abc"}`,
		},
		{
			name: "Error - service error",
			mockService: mockProductService{
				error: errors.New("service unavailable"),
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := NewAPI(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tc.query, nil)
			rr := httptest.NewRecorder()

			api.List(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product added",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Product Added", bottleDto),
			},
			body:         bottleInputJSON,
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Product Added","error":"","data":` + bottleDtoJSON + `}`,
		},
		{
			name: "Failure - image not uploaded",
			mockService: mockProductService{
				result: service.Failure(http.StatusNotFound, "Product image doesn't exists, please upload first"),
			},
			body:         bottleInputJSON,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"status":false,"http_code":404,"message":"Product image doesn't exists, please upload first","error":"","data":null}`,
		},
		{
			name:         "Error - invalid body",
			mockService:  mockProductService{},
			body:         "{not json",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - missing required fields",
			mockService:  mockProductService{},
			body:         `{"name":"Water Bottle"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Description":"failed on rule: required","Color":"failed on rule: required","Size":"failed on rule: required","Image":"failed on rule: required","Price":"failed on rule: required"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := NewAPI(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			api.Create(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product updated echoes the input",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Product details updated", service.ProductInput{
					Name:        "Water Bottle",
					Description: "Water bottle for daily use",
					Color:       "Black",
					Size:        "1L",
					Image:       "bottle.png",
					Price:       150,
				}),
			},
			productID:    "1",
			body:         bottleInputJSON,
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Product details updated","error":"","data":` + bottleInputJSON + `}`,
		},
		{
			name: "Failure - product not exists",
			mockService: mockProductService{
				result: service.Failure(http.StatusNotFound, "Product not exists"),
			},
			productID:    "999",
			body:         bottleInputJSON,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"status":false,"http_code":404,"message":"Product not exists","error":"","data":null}`,
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "abc",
			body:         bottleInputJSON,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product ID: abc"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := NewAPI(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPut, "/api/products/"+tc.productID, strings.NewReader(tc.body))
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			api.Update(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product deleted",
			mockService: mockProductService{
				result: service.Success(http.StatusOK, "Product Deleted", bottleDto),
			},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":true,"http_code":200,"message":"Product Deleted","error":"","data":` + bottleDtoJSON + `}`,
		},
		{
			name: "Failure - product not exists",
			mockService: mockProductService{
				result: service.Failure(http.StatusNotFound, "Product not exists"),
			},
			productID:    "999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"status":false,"http_code":404,"message":"Product not exists","error":"","data":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := NewAPI(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodDelete, "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			api.DeleteByID(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_UploadImage(t *testing.T) {
	t.Run("Success - file saved", func(t *testing.T) {
		// given
		mock := &mockProductService{
			result: service.Success(http.StatusOK, "File Saved", "AbC123_bottle.png"),
		}
		api := NewAPI(mock, testLogger())

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "bottle.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/products/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()

		// when
		api.UploadImage(rr, req)

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":true,"http_code":200,"message":"File Saved","error":"","data":"AbC123_bottle.png"}`, rr.Body.String())
		assert.Equal(t, "bottle.png", mock.uploadedName)
		assert.Equal(t, "png-bytes", string(mock.uploadedContent))
	})

	t.Run("Error - missing file field", func(t *testing.T) {
		api := NewAPI(&mockProductService{}, testLogger())
		req := httptest.NewRequest(http.MethodPost, "/api/products/upload", strings.NewReader("no multipart"))
		rr := httptest.NewRecorder()

		api.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"file form field is required"}`, rr.Body.String())
	})
}

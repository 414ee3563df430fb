package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercantile-labs/wishlists-backend/api/middleware"
	"github.com/mercantile-labs/wishlists-backend/internal/wishlists"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/types"
)

type stubWishlistService struct {
	createFn func(ctx context.Context, params wishlists.CreateParams) (wishlists.WishlistDTO, error)
	getFn    func(ctx context.Context, id int64) (wishlists.WishlistDTO, error)
	listFn   func(ctx context.Context, filters wishlists.Filters, cursor string, limit int) (wishlists.PageDTO, error)
	updateFn func(ctx context.Context, id int64, params wishlists.UpdateParams) (wishlists.WishlistDTO, error)
	deleteFn func(ctx context.Context, id, customerID int64) error
}

func (s *stubWishlistService) Create(ctx context.Context, params wishlists.CreateParams) (wishlists.WishlistDTO, error) {
	return s.createFn(ctx, params)
}

func (s *stubWishlistService) Get(ctx context.Context, id int64) (wishlists.WishlistDTO, error) {
	return s.getFn(ctx, id)
}

func (s *stubWishlistService) List(ctx context.Context, filters wishlists.Filters, cursor string, limit int) (wishlists.PageDTO, error) {
	return s.listFn(ctx, filters, cursor, limit)
}

func (s *stubWishlistService) Update(ctx context.Context, id int64, params wishlists.UpdateParams) (wishlists.WishlistDTO, error) {
	return s.updateFn(ctx, id, params)
}

func (s *stubWishlistService) Delete(ctx context.Context, id, customerID int64) error {
	return s.deleteFn(ctx, id, customerID)
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWishlistCreateReturns201(t *testing.T) {
	svc := &stubWishlistService{
		createFn: func(_ context.Context, params wishlists.CreateParams) (wishlists.WishlistDTO, error) {
			assert.Equal(t, int64(1001), params.CustomerID)
			assert.Equal(t, "gifts", params.Name)
			return wishlists.WishlistDTO{ID: 7, CustomerID: params.CustomerID, Name: params.Name, Items: []wishlists.ItemDTO{}}, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/wishlists", strings.NewReader(`{"name":"gifts"}`))
	r = r.WithContext(middleware.WithCustomerID(r.Context(), 1001))
	w := httptest.NewRecorder()

	WishlistCreate(svc, nil).ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/wishlists/7", w.Header().Get("Location"))

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, float64(7), data["id"])
}

func TestWishlistCreateRejectsMissingName(t *testing.T) {
	svc := &stubWishlistService{
		createFn: func(context.Context, wishlists.CreateParams) (wishlists.WishlistDTO, error) {
			t.Fatal("service should not be called")
			return wishlists.WishlistDTO{}, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/wishlists", strings.NewReader(`{"category":"x"}`))
	w := httptest.NewRecorder()

	WishlistCreate(svc, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestWishlistGetMapsNotFound(t *testing.T) {
	svc := &stubWishlistService{
		getFn: func(_ context.Context, id int64) (wishlists.WishlistDTO, error) {
			return wishlists.WishlistDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "wishlist not found")
		},
	}

	r := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/wishlists/42", nil),
		map[string]string{"wishlist_id": "42"})
	w := httptest.NewRecorder()

	WishlistGet(svc, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistGetRejectsBadID(t *testing.T) {
	r := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/wishlists/abc", nil),
		map[string]string{"wishlist_id": "abc"})
	w := httptest.NewRecorder()

	WishlistGet(&stubWishlistService{}, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistListPassesFilters(t *testing.T) {
	svc := &stubWishlistService{
		listFn: func(_ context.Context, filters wishlists.Filters, cursor string, limit int) (wishlists.PageDTO, error) {
			require.NotNil(t, filters.CustomerID)
			assert.Equal(t, int64(1001), *filters.CustomerID)
			assert.Equal(t, "summer", filters.Name)
			assert.Equal(t, "books", filters.Category)
			assert.Equal(t, 10, limit)
			return wishlists.PageDTO{Wishlists: []wishlists.WishlistDTO{}, Limit: 10}, nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/wishlists?customer_id=1001&name=summer&category=books&limit=10", nil)
	w := httptest.NewRecorder()

	WishlistList(svc, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWishlistUpdateForbiddenForOtherCustomer(t *testing.T) {
	svc := &stubWishlistService{
		updateFn: func(context.Context, int64, wishlists.UpdateParams) (wishlists.WishlistDTO, error) {
			return wishlists.WishlistDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist belongs to another customer")
		},
	}

	r := withURLParams(
		httptest.NewRequest(http.MethodPut, "/api/v1/wishlists/3", strings.NewReader(`{"name":"hijack"}`)),
		map[string]string{"wishlist_id": "3"})
	w := httptest.NewRecorder()

	WishlistUpdate(svc, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWishlistDeleteReturns204(t *testing.T) {
	var deleted int64
	svc := &stubWishlistService{
		deleteFn: func(_ context.Context, id, customerID int64) error {
			deleted = id
			assert.Equal(t, int64(1001), customerID)
			return nil
		},
	}

	r := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/wishlists/5", nil),
		map[string]string{"wishlist_id": "5"})
	r = r.WithContext(middleware.WithCustomerID(r.Context(), 1001))
	w := httptest.NewRecorder()

	WishlistDelete(svc, nil).ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(5), deleted)
	assert.Empty(t, w.Body.String())
}

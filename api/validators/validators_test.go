package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
)

type createBody struct {
	Name      string `json:"name" validate:"required,max=64"`
	ProductID int64  `json:"product_id" validate:"omitempty,gt=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"gifts","product_id":5}`))
	var body createBody
	require.NoError(t, DecodeJSONBody(r, &body))
	assert.Equal(t, "gifts", body.Name)
	assert.Equal(t, int64(5), body.ProductID)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","bogus":true}`))
	var body createBody
	err := DecodeJSONBody(r, &body)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":-1}`))
	var body createBody
	err := DecodeJSONBody(r, &body)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be greater than 0", details["product_id"])
}

func newChiRequest(t *testing.T, param, value string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam(newChiRequest(t, "wishlist_id", "42"), "wishlist_id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-7"} {
		_, err := ParseIDParam(newChiRequest(t, "wishlist_id", bad), "wishlist_id")
		require.Error(t, err, "value %q", bad)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=10", nil)
	value, err := ParseQueryInt(r, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, value)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	value, err = ParseQueryInt(r, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, value)

	r = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	_, err = ParseQueryInt(r, "limit", 25, 1, 100)
	require.Error(t, err)
}

func TestParseQueryInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?customer_id=1001", nil)
	value, err := ParseQueryInt64(r, "customer_id")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, int64(1001), *value)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	value, err = ParseQueryInt64(r, "customer_id")
	require.NoError(t, err)
	assert.Nil(t, value)

	r = httptest.NewRequest(http.MethodGet, "/?customer_id=pete", nil)
	_, err = ParseQueryInt64(r, "customer_id")
	require.Error(t, err)
}

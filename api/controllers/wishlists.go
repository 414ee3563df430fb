package controllers

import (
	"net/http"
	"strings"

	"github.com/mercantile-labs/wishlists-backend/api/middleware"
	"github.com/mercantile-labs/wishlists-backend/api/responses"
	"github.com/mercantile-labs/wishlists-backend/api/validators"
	"github.com/mercantile-labs/wishlists-backend/internal/wishlists"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/logger"
	"github.com/mercantile-labs/wishlists-backend/pkg/pagination"
)

type wishlistPayload struct {
	Name        string  `json:"name" validate:"required,max=64"`
	Category    string  `json:"category" validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// WishlistCreate registers a new wishlist for the acting customer.
func WishlistCreate(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload wishlistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Create(ctx, wishlists.CreateParams{
			CustomerID:  middleware.CustomerIDFromContext(ctx),
			Name:        payload.Name,
			Category:    payload.Category,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Location", "/api/v1/wishlists/"+itoa(dto.ID))
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// WishlistGet returns one wishlist with its items in position order.
func WishlistGet(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// WishlistList returns wishlists filtered by customer_id, name substring,
// and category.
func WishlistList(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		customerID, err := validators.ParseQueryInt64(r, "customer_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, wishlists.Filters{
			CustomerID: customerID,
			Name:       strings.TrimSpace(r.URL.Query().Get("name")),
			Category:   strings.TrimSpace(r.URL.Query().Get("category")),
		}, strings.TrimSpace(r.URL.Query().Get("cursor")), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// WishlistUpdate renames or recategorizes a wishlist owned by the customer.
func WishlistUpdate(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload wishlistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, id, wishlists.UpdateParams{
			CustomerID:  middleware.CustomerIDFromContext(ctx),
			Name:        payload.Name,
			Category:    payload.Category,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// WishlistDelete removes a wishlist and its items. Responds 204 even when
// the wishlist is already gone.
func WishlistDelete(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id, middleware.CustomerIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/mercantile-labs/wishlists-backend/api/responses"
	"github.com/mercantile-labs/wishlists-backend/api/validators"
	"github.com/mercantile-labs/wishlists-backend/internal/items"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/logger"
)

type addItemPayload struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type updateItemPayload struct {
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// moveItemPayload accepts the position target under either key. Any integer
// is well formed here; a target at or below the smallest position is a front
// move and past the largest is an end move.
type moveItemPayload struct {
	BeforePosition *int64 `json:"before_position"`
	Position       *int64 `json:"position"`
}

func (p moveItemPayload) target() (int64, error) {
	if p.BeforePosition != nil {
		return *p.BeforePosition, nil
	}
	if p.Position != nil {
		return *p.Position, nil
	}
	return 0, pkgerrors.New(pkgerrors.CodeValidation, "before_position must be provided and must be an integer")
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func itemKey(r *http.Request) (items.Key, error) {
	wishlistID, err := validators.ParseIDParam(r, "wishlist_id")
	if err != nil {
		return items.Key{}, err
	}
	productID, err := validators.ParseIDParam(r, "product_id")
	if err != nil {
		return items.Key{}, err
	}
	return items.Key{WishlistID: wishlistID, ProductID: productID}, nil
}

// ItemAdd appends a product to the end of the wishlist.
func ItemAdd(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		wishlistID, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Add(ctx, wishlistID, items.AddParams{
			ProductID:   payload.ProductID,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Location", "/api/v1/wishlists/"+itoa(wishlistID)+"/items/"+itoa(dto.ProductID))
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ItemList returns the wishlist's items ordered by position.
func ItemList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		wishlistID, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.List(ctx, wishlistID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ItemGet returns a single wishlist item.
func ItemGet(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		key, err := itemKey(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, key)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ItemUpdate changes the item description. Positions are only ever changed
// through the move endpoint.
func ItemUpdate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		key, err := itemKey(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, key, items.UpdateParams{Description: payload.Description})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ItemDelete removes a product from the wishlist. Responds 204 even when
// the item is already gone.
func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		key, err := itemKey(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Remove(ctx, key); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// ItemMove repositions an item ahead of the requested position.
func ItemMove(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		key, err := itemKey(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload moveItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		before, err := payload.target()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Move(ctx, key, before)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ItemRenumber rewrites the wishlist's positions back to even gaps.
func ItemRenumber(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		wishlistID, err := validators.ParseIDParam(r, "wishlist_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.Renumber(ctx, wishlistID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

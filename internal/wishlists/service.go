package wishlists

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mercantile-labs/wishlists-backend/pkg/db"
	"github.com/mercantile-labs/wishlists-backend/pkg/db/models"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/outbox"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo   *Repository
	Client *db.Client
	Outbox *outbox.Service
}

// Service exposes business rules for wishlist management.
type Service interface {
	Create(ctx context.Context, params CreateParams) (WishlistDTO, error)
	Get(ctx context.Context, id int64) (WishlistDTO, error)
	List(ctx context.Context, filters Filters, cursor string, limit int) (PageDTO, error)
	Update(ctx context.Context, id int64, params UpdateParams) (WishlistDTO, error)
	Delete(ctx context.Context, id, customerID int64) error
}

type service struct {
	repo   *Repository
	client *db.Client
	outbox *outbox.Service
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		repo:   params.Repo,
		client: params.Client,
		outbox: params.Outbox,
	}, nil
}

// Create stores a new wishlist and queues the created event.
func (s *service) Create(ctx context.Context, params CreateParams) (WishlistDTO, error) {
	var row models.Wishlist
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.Create(ctx, tx, params)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wishlist")
		}
		row = created
		return s.emit(ctx, tx, outbox.EventWishlistCreated, row)
	})
	if err != nil {
		return WishlistDTO{}, err
	}
	return ToDTO(row), nil
}

// Get loads one wishlist with its items in position order.
func (s *service) Get(ctx context.Context, id int64) (WishlistDTO, error) {
	row, err := s.findWishlist(ctx, id)
	if err != nil {
		return WishlistDTO{}, err
	}
	return ToDTO(row), nil
}

// List returns a filtered, cursor-paginated page of wishlists.
func (s *service) List(ctx context.Context, filters Filters, cursor string, limit int) (PageDTO, error) {
	page, err := s.repo.List(ctx, filters, cursor, limit)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlists")
	}
	return page, nil
}

// Update renames or recategorizes a wishlist. Only the owning customer may update it.
func (s *service) Update(ctx context.Context, id int64, params UpdateParams) (WishlistDTO, error) {
	existing, err := s.findWishlist(ctx, id)
	if err != nil {
		return WishlistDTO{}, err
	}
	if existing.CustomerID != params.CustomerID {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist belongs to another customer")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, id, params); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wishlist")
		}
		existing.Name = params.Name
		existing.CustomerID = params.CustomerID
		return s.emit(ctx, tx, outbox.EventWishlistUpdated, existing)
	})
	if err != nil {
		return WishlistDTO{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a wishlist owned by the customer. Deleting an absent
// wishlist is a no-op.
func (s *service) Delete(ctx context.Context, id, customerID int64) error {
	existing, err := s.findWishlist(ctx, id)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil
		}
		return err
	}
	if existing.CustomerID != customerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "wishlist belongs to another customer")
	}

	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist")
		}
		return s.emit(ctx, tx, outbox.EventWishlistDeleted, existing)
	})
}

func (s *service) findWishlist(ctx context.Context, id int64) (models.Wishlist, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
		}
		return models.Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return row, nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, eventType string, row models.Wishlist) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: outbox.AggregateWishlist,
		AggregateID:   row.ID,
		Actor:         &outbox.ActorRef{CustomerID: row.CustomerID},
		Data: outbox.WishlistPayload{
			WishlistID: row.ID,
			CustomerID: row.CustomerID,
			Name:       row.Name,
		},
	})
}

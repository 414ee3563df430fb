package items

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mercantile-labs/wishlists-backend/pkg/db"
	"github.com/mercantile-labs/wishlists-backend/pkg/db/models"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/logger"
	"github.com/mercantile-labs/wishlists-backend/pkg/metrics"
	"github.com/mercantile-labs/wishlists-backend/pkg/outbox"
	"github.com/mercantile-labs/wishlists-backend/pkg/redis"
)

// ServiceParams groups dependencies for the item service.
type ServiceParams struct {
	Repo     *Repository
	Client   *db.Client
	Cache    redis.Cache
	CacheTTL time.Duration
	Outbox   *outbox.Service
	Metrics  *metrics.PositionMetrics
	Logger   *logger.Logger
}

// Service exposes business rules for wishlist items, including the ordered
// position management.
type Service interface {
	Add(ctx context.Context, wishlistID int64, params AddParams) (ItemDTO, error)
	Get(ctx context.Context, key Key) (ItemDTO, error)
	List(ctx context.Context, wishlistID int64) ([]ItemDTO, error)
	Update(ctx context.Context, key Key, params UpdateParams) (ItemDTO, error)
	Remove(ctx context.Context, key Key) error
	Move(ctx context.Context, key Key, beforePosition int64) (MoveDTO, error)
	Renumber(ctx context.Context, wishlistID int64) ([]ItemDTO, error)
}

type service struct {
	repo     *Repository
	client   *db.Client
	cache    redis.Cache
	cacheTTL time.Duration
	outbox   *outbox.Service
	metrics  *metrics.PositionMetrics
	logg     *logger.Logger
}

// NewService builds an item service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		repo:     params.Repo,
		client:   params.Client,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		outbox:   params.Outbox,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// Add appends a product to the end of the wishlist at max position plus Gap.
func (s *service) Add(ctx context.Context, wishlistID int64, params AddParams) (ItemDTO, error) {
	if err := s.ensureWishlist(ctx, wishlistID); err != nil {
		return ItemDTO{}, err
	}

	key := Key{WishlistID: wishlistID, ProductID: params.ProductID}
	var row models.WishlistItem
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.FindByKey(ctx, tx, key); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item")
		}

		maxPos, err := s.repo.MaxPosition(ctx, tx, wishlistID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find last position")
		}

		row = models.WishlistItem{
			WishlistID:  wishlistID,
			ProductID:   params.ProductID,
			Description: params.Description,
			Position:    maxPos + Gap,
		}
		if err := s.repo.Create(ctx, tx, row); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already in wishlist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
		}

		return s.emit(ctx, tx, outbox.EventItemAdded, wishlistID, outbox.ItemPayload{
			WishlistID: wishlistID,
			ProductID:  params.ProductID,
			Position:   row.Position,
		})
	})
	if err != nil {
		return ItemDTO{}, err
	}

	s.metrics.IncAppend()
	s.invalidate(ctx, wishlistID)
	return toDTO(row), nil
}

// Get loads one item.
func (s *service) Get(ctx context.Context, key Key) (ItemDTO, error) {
	row, err := s.findItem(ctx, key)
	if err != nil {
		return ItemDTO{}, err
	}
	return toDTO(row), nil
}

// List returns the wishlist's items in position order, from cache when warm.
func (s *service) List(ctx context.Context, wishlistID int64) ([]ItemDTO, error) {
	if err := s.ensureWishlist(ctx, wishlistID); err != nil {
		return nil, err
	}

	if cached, ok := s.fromCache(ctx, wishlistID); ok {
		return cached, nil
	}

	rows, err := s.repo.ListByWishlist(ctx, nil, wishlistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	dtos := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	s.toCache(ctx, wishlistID, dtos)
	return dtos, nil
}

// Update changes the item description.
func (s *service) Update(ctx context.Context, key Key, params UpdateParams) (ItemDTO, error) {
	if _, err := s.findItem(ctx, key); err != nil {
		return ItemDTO{}, err
	}
	if err := s.repo.UpdateDescription(ctx, nil, key, params.Description); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	s.invalidate(ctx, key.WishlistID)
	return s.Get(ctx, key)
}

// Remove deletes the item. Removing an absent item is a no-op.
func (s *service) Remove(ctx context.Context, key Key) error {
	row, err := s.findItem(ctx, key)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil
		}
		return err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
		}
		return s.emit(ctx, tx, outbox.EventItemRemoved, key.WishlistID, outbox.ItemPayload{
			WishlistID: key.WishlistID,
			ProductID:  key.ProductID,
			Position:   row.Position,
		})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, key.WishlistID)
	return nil
}

// Move places the item ahead of beforePosition using midpoint insertion.
// When the midpoint collides with the predecessor the whole list is
// renumbered first, then the placement is recomputed once against the fresh
// positions.
func (s *service) Move(ctx context.Context, key Key, beforePosition int64) (MoveDTO, error) {
	start := time.Now()
	result, err := s.move(ctx, key, beforePosition)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ObserveMoveDuration(outcome, time.Since(start))
	return result, err
}

func (s *service) move(ctx context.Context, key Key, beforePosition int64) (MoveDTO, error) {
	if s.logg != nil {
		ctx = s.logg.WithWishlistID(ctx, key.WishlistID)
	}
	if err := s.ensureWishlist(ctx, key.WishlistID); err != nil {
		return MoveDTO{}, err
	}

	var (
		result  MoveDTO
		label   string
		changed bool
	)
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.ListByWishlist(ctx, tx, key.WishlistID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items")
		}
		if len(rows) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "wishlist has no items")
		}

		moved, found := findByKey(rows, key)
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in wishlist")
		}

		others := othersOf(rows, key)
		if len(others) == 0 {
			// single item, nothing to reorder
			label = placementNoop
			result = MoveDTO{Item: toDTO(moved)}
			return nil
		}

		newPosition, renumbered, placementLabel, err := s.resolvePosition(ctx, tx, key, rows, others, beforePosition)
		if err != nil {
			return err
		}
		label = placementLabel

		if renumbered || newPosition != moved.Position {
			if err := s.repo.SetPosition(ctx, tx, key, newPosition); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set position")
			}
			changed = true
			if err := s.emit(ctx, tx, outbox.EventItemMoved, key.WishlistID, outbox.ItemMovedPayload{
				WishlistID:     key.WishlistID,
				ProductID:      key.ProductID,
				BeforePosition: beforePosition,
				NewPosition:    newPosition,
				Renumbered:     renumbered,
			}); err != nil {
				return err
			}
		}

		moved.Position = newPosition
		result = MoveDTO{Item: toDTO(moved), Renumbered: renumbered}
		return nil
	})
	if err != nil {
		return MoveDTO{}, err
	}

	s.metrics.IncMove(label)
	if changed {
		s.invalidate(ctx, key.WishlistID)
	}
	return result, nil
}

// resolvePosition computes where the moved item lands, renumbering the list
// inside the open transaction when the target gap is exhausted.
func (s *service) resolvePosition(
	ctx context.Context,
	tx *gorm.DB,
	key Key,
	rows, others []models.WishlistItem,
	beforePosition int64,
) (int64, bool, string, error) {
	maxOther := others[len(others)-1].Position
	if beforePosition > maxOther {
		return maxOther + Gap, false, placementEnd, nil
	}

	succ, ok := successorOf(others, beforePosition)
	if !ok {
		// unreachable given the end check above, kept as a guard
		return maxOther + Gap, false, placementEnd, nil
	}

	target := slotBefore(others, succ.Position)
	if !target.collision {
		return target.position, false, target.label, nil
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"product_id":      key.ProductID,
			"before_position": beforePosition,
		})
		s.logg.Info(logCtx, "position gap exhausted, renumbering wishlist")
	}

	if err := s.renumberRows(ctx, tx, rows); err != nil {
		return 0, false, "", err
	}
	s.metrics.IncRenumber(metrics.RenumberReasonGapExhausted)

	fresh, err := s.repo.ListByWishlist(ctx, tx, key.WishlistID)
	if err != nil {
		return 0, false, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload items")
	}

	// the successor is re-resolved by identity, not by its old position
	freshSucc, found := findByKey(fresh, Key{WishlistID: succ.WishlistID, ProductID: succ.ProductID})
	if !found {
		return 0, false, "", pkgerrors.New(pkgerrors.CodeInternal, "successor vanished during renumber")
	}

	target = slotBefore(othersOf(fresh, key), freshSucc.Position)
	return target.position, true, target.label, nil
}

// Renumber rewrites every position to (rank+1)*Gap in the current order.
func (s *service) Renumber(ctx context.Context, wishlistID int64) ([]ItemDTO, error) {
	if s.logg != nil {
		ctx = s.logg.WithWishlistID(ctx, wishlistID)
	}
	if err := s.ensureWishlist(ctx, wishlistID); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.ListByWishlist(ctx, tx, wishlistID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items")
		}
		if err := s.renumberRows(ctx, tx, rows); err != nil {
			return err
		}

		positions := renumberedPositions(rows)
		dtos = make([]ItemDTO, 0, len(rows))
		for i, row := range rows {
			row.Position = positions[i]
			dtos = append(dtos, toDTO(row))
		}

		return s.emit(ctx, tx, outbox.EventListRenumbered, wishlistID, outbox.RenumberedPayload{
			WishlistID: wishlistID,
			ItemCount:  len(rows),
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRenumber(metrics.RenumberReasonRequested)
	s.invalidate(ctx, wishlistID)
	return dtos, nil
}

func (s *service) renumberRows(ctx context.Context, tx *gorm.DB, rows []models.WishlistItem) error {
	positions := renumberedPositions(rows)
	for i, row := range rows {
		if row.Position == positions[i] {
			continue
		}
		key := Key{WishlistID: row.WishlistID, ProductID: row.ProductID}
		if err := s.repo.SetPosition(ctx, tx, key, positions[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "renumber items")
		}
	}
	return nil
}

func (s *service) ensureWishlist(ctx context.Context, wishlistID int64) error {
	exists, err := s.repo.WishlistExists(ctx, wishlistID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist not found")
	}
	return nil
}

func (s *service) findItem(ctx context.Context, key Key) (models.WishlistItem, error) {
	row, err := s.repo.FindByKey(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
		}
		return models.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return row, nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, eventType string, wishlistID int64, data any) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: outbox.AggregateWishlist,
		AggregateID:   wishlistID,
		Data:          data,
	})
}

func (s *service) invalidate(ctx context.Context, wishlistID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.ItemListKey(wishlistID)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to invalidate item cache")
	}
}

func (s *service) fromCache(ctx context.Context, wishlistID int64) ([]ItemDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.ItemListKey(wishlistID))
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "item cache read failed")
		}
		return nil, false
	}
	var dtos []ItemDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		return nil, false
	}
	return dtos, true
}

func (s *service) toCache(ctx context.Context, wishlistID int64, dtos []ItemDTO) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.ItemListKey(wishlistID), string(raw), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "item cache write failed")
	}
}

func findByKey(rows []models.WishlistItem, key Key) (models.WishlistItem, bool) {
	for _, row := range rows {
		if row.WishlistID == key.WishlistID && row.ProductID == key.ProductID {
			return row, true
		}
	}
	return models.WishlistItem{}, false
}

func toDTO(row models.WishlistItem) ItemDTO {
	return ItemDTO{
		WishlistID:  row.WishlistID,
		ProductID:   row.ProductID,
		Description: row.Description,
		Position:    row.Position,
	}
}

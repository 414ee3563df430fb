package wishlists

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mercantile-labs/wishlists-backend/internal/repo"
	"github.com/mercantile-labs/wishlists-backend/pkg/db/models"
	"github.com/mercantile-labs/wishlists-backend/pkg/pagination"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// Create inserts a new wishlist row. Pass tx to join an open transaction.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, params CreateParams) (models.Wishlist, error) {
	row := models.Wishlist{
		CustomerID:  params.CustomerID,
		Name:        params.Name,
		Category:    params.Category,
		Description: params.Description,
	}
	if err := r.base.Conn(ctx, tx).Create(&row).Error; err != nil {
		return models.Wishlist{}, err
	}
	return row, nil
}

// FindByID loads a wishlist with its items ordered by position.
func (r *Repository) FindByID(ctx context.Context, id int64) (models.Wishlist, error) {
	var row models.Wishlist
	err := r.base.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&row, "id = ?", id).Error
	return row, err
}

// List returns a cursor-paginated wishlist page with optional filters.
func (r *Repository) List(ctx context.Context, filters Filters, cursor string, limit int) (PageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return PageDTO{}, err
	}

	query := r.base.DB(ctx).Model(&models.Wishlist{})
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if name := strings.TrimSpace(filters.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if category := strings.TrimSpace(filters.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	if decodedCursor != nil {
		query = query.Where(
			"(created_date < ?) OR (created_date = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.Wishlist
	err = query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_date DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error
	if err != nil {
		return PageDTO{}, err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedDate,
			ID:        last.ID,
		})
	}

	page := PageDTO{
		Wishlists:  make([]WishlistDTO, 0, len(rows)),
		NextCursor: nextCursor,
		Limit:      normalizedLimit,
	}
	for _, row := range rows {
		page.Wishlists = append(page.Wishlists, ToDTO(row))
	}
	return page, nil
}

// Update applies mutable fields and stamps updated_date.
func (r *Repository) Update(ctx context.Context, tx *gorm.DB, id int64, params UpdateParams) error {
	now := time.Now()
	updates := map[string]any{
		"name":         params.Name,
		"category":     params.Category,
		"description":  params.Description,
		"updated_date": &now,
	}
	return r.base.Conn(ctx, tx).Model(&models.Wishlist{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the wishlist and its items.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	conn := r.base.Conn(ctx, tx)
	// sqlite test fixtures don't enforce the FK cascade, so drop items first.
	if err := conn.Delete(&models.WishlistItem{}, "wishlist_id = ?", id).Error; err != nil {
		return err
	}
	return conn.Delete(&models.Wishlist{}, "id = ?", id).Error
}

// ToDTO maps a wishlist row (with preloaded items) to its external shape.
func ToDTO(row models.Wishlist) WishlistDTO {
	items := make([]ItemDTO, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, ItemDTO{
			WishlistID:  item.WishlistID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Position:    item.Position,
		})
	}
	return WishlistDTO{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		Name:        row.Name,
		Category:    row.Category,
		Description: row.Description,
		CreatedDate: row.CreatedDate,
		UpdatedDate: row.UpdatedDate,
		Items:       items,
	}
}

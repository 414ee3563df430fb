package items

import (
	"context"

	"gorm.io/gorm"

	"github.com/mercantile-labs/wishlists-backend/internal/repo"
	"github.com/mercantile-labs/wishlists-backend/pkg/db/models"
)

// Repository encapsulates wishlist item persistence. Mutating methods accept
// an optional tx so move and renumber can batch their row updates into a
// single transaction.
type Repository struct {
	base repo.Base
}

// NewRepository constructs an item repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// ListByWishlist returns all items of a wishlist ordered by position.
func (r *Repository) ListByWishlist(ctx context.Context, tx *gorm.DB, wishlistID int64) ([]models.WishlistItem, error) {
	var rows []models.WishlistItem
	err := r.base.Conn(ctx, tx).
		Where("wishlist_id = ?", wishlistID).
		Order("position ASC").
		Order("product_id ASC").
		Find(&rows).Error
	return rows, err
}

// FindByKey loads a single item.
func (r *Repository) FindByKey(ctx context.Context, tx *gorm.DB, key Key) (models.WishlistItem, error) {
	var row models.WishlistItem
	err := r.base.Conn(ctx, tx).
		First(&row, "wishlist_id = ? AND product_id = ?", key.WishlistID, key.ProductID).Error
	return row, err
}

// MaxPosition returns the highest position in the wishlist, 0 when empty.
func (r *Repository) MaxPosition(ctx context.Context, tx *gorm.DB, wishlistID int64) (int64, error) {
	var max int64
	err := r.base.Conn(ctx, tx).
		Model(&models.WishlistItem{}).
		Where("wishlist_id = ?", wishlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, row models.WishlistItem) error {
	return r.base.Conn(ctx, tx).Create(&row).Error
}

// UpdateDescription sets the item description.
func (r *Repository) UpdateDescription(ctx context.Context, tx *gorm.DB, key Key, description *string) error {
	return r.base.Conn(ctx, tx).
		Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", key.WishlistID, key.ProductID).
		Update("description", description).Error
}

// SetPosition moves a single row to the given position.
func (r *Repository) SetPosition(ctx context.Context, tx *gorm.DB, key Key, position int64) error {
	return r.base.Conn(ctx, tx).
		Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", key.WishlistID, key.ProductID).
		Update("position", position).Error
}

// Delete removes the item if present.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, key Key) error {
	return r.base.Conn(ctx, tx).
		Delete(&models.WishlistItem{}, "wishlist_id = ? AND product_id = ?", key.WishlistID, key.ProductID).Error
}

// WishlistExists reports whether the parent wishlist row is present.
func (r *Repository) WishlistExists(ctx context.Context, wishlistID int64) (bool, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Wishlist{}).
		Where("id = ?", wishlistID).
		Count(&count).Error
	return count > 0, err
}

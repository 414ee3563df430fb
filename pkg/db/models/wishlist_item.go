package models

// WishlistItem is a product entry in a wishlist. Identity is the composite
// (wishlist_id, product_id) key, so a product appears at most once per list.
// Position is a sparse integer used only for relative ordering.
type WishlistItem struct {
	WishlistID  int64   `gorm:"column:wishlist_id;primaryKey;autoIncrement:false" json:"wishlist_id"`
	ProductID   int64   `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	Description *string `gorm:"column:description;size:255" json:"description"`
	Position    int64   `gorm:"column:position;not null" json:"position"`
}

// TableName keeps the plural table the migrations create.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

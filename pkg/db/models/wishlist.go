package models

import "time"

// Wishlist is a named, customer-owned collection of ordered items.
type Wishlist struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerID  int64      `gorm:"column:customer_id;not null;index:wishlists_customer_id_idx" json:"customer_id"`
	Name        string     `gorm:"column:name;size:64;not null" json:"name"`
	Category    string     `gorm:"column:category;size:64" json:"category"`
	Description *string    `gorm:"column:description;size:255" json:"description"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime" json:"created_date"`
	UpdatedDate *time.Time `gorm:"column:updated_date" json:"updated_date"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName keeps the plural table the migrations create.
func (Wishlist) TableName() string {
	return "wishlists"
}

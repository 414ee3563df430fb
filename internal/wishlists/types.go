package wishlists

import (
	"time"
)

// CreateParams carries validated inputs for creating a wishlist.
type CreateParams struct {
	CustomerID  int64
	Name        string
	Category    string
	Description *string
}

// UpdateParams carries validated inputs for renaming or recategorizing a wishlist.
type UpdateParams struct {
	CustomerID  int64
	Name        string
	Category    string
	Description *string
}

// Filters narrows wishlist listings.
type Filters struct {
	CustomerID *int64
	Name       string
	Category   string
}

// ItemDTO is the wishlist item view embedded in wishlist responses.
type ItemDTO struct {
	WishlistID  int64   `json:"wishlist_id"`
	ProductID   int64   `json:"product_id"`
	Description *string `json:"description,omitempty"`
	Position    int64   `json:"position"`
}

// WishlistDTO is the external wishlist representation.
type WishlistDTO struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customer_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
	Items       []ItemDTO  `json:"items"`
}

// PageDTO returns a cursor-paginated wishlist listing.
type PageDTO struct {
	Wishlists  []WishlistDTO `json:"wishlists"`
	NextCursor string        `json:"next_cursor,omitempty"`
	Limit      int           `json:"limit"`
}

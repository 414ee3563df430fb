package outbox

// Event type values stored in outbox_events.event_type.
const (
	EventWishlistCreated = "wishlist.created"
	EventWishlistUpdated = "wishlist.updated"
	EventWishlistDeleted = "wishlist.deleted"

	EventItemAdded      = "wishlist.item.added"
	EventItemRemoved    = "wishlist.item.removed"
	EventItemMoved      = "wishlist.item.moved"
	EventListRenumbered = "wishlist.renumbered"
)

// AggregateWishlist is the aggregate type for all wishlist events.
const AggregateWishlist = "wishlist"

// WishlistPayload is the event data for wishlist lifecycle events.
type WishlistPayload struct {
	WishlistID int64  `json:"wishlistId"`
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
}

// ItemPayload is the event data for item add/remove events.
type ItemPayload struct {
	WishlistID int64 `json:"wishlistId"`
	ProductID  int64 `json:"productId"`
	Position   int64 `json:"position"`
}

// ItemMovedPayload is the event data for move events.
type ItemMovedPayload struct {
	WishlistID     int64 `json:"wishlistId"`
	ProductID      int64 `json:"productId"`
	BeforePosition int64 `json:"beforePosition"`
	NewPosition    int64 `json:"newPosition"`
	Renumbered     bool  `json:"renumbered"`
}

// RenumberedPayload is the event data for full renumber passes.
type RenumberedPayload struct {
	WishlistID int64 `json:"wishlistId"`
	ItemCount  int   `json:"itemCount"`
}

package items

// Gap is the spacing between positions when items are appended or renumbered.
// The slack lets moves land between neighbors without touching other rows.
const Gap = 1000

// Key identifies one wishlist item. Items have no surrogate id; the pair is
// the primary key.
type Key struct {
	WishlistID int64
	ProductID  int64
}

// AddParams carries validated inputs for adding an item to a wishlist.
type AddParams struct {
	ProductID   int64
	Description *string
}

// UpdateParams carries the mutable item fields.
type UpdateParams struct {
	Description *string
}

// ItemDTO is the external item representation.
type ItemDTO struct {
	WishlistID  int64   `json:"wishlist_id"`
	ProductID   int64   `json:"product_id"`
	Description *string `json:"description,omitempty"`
	Position    int64   `json:"position"`
}

// MoveDTO reports the outcome of a move operation.
type MoveDTO struct {
	Item       ItemDTO `json:"item"`
	Renumbered bool    `json:"renumbered"`
}

// Placement labels used for metrics.
const (
	placementFront  = "front"
	placementMiddle = "middle"
	placementEnd    = "end"
	placementNoop   = "noop"
)

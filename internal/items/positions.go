package items

import (
	"github.com/mercantile-labs/wishlists-backend/pkg/db/models"
)

// slot is a computed target position for the moved item.
type slot struct {
	position  int64
	label     string
	collision bool
}

// othersOf filters the moved item out of the loaded rows. Rows stay in
// position order.
func othersOf(rows []models.WishlistItem, moved Key) []models.WishlistItem {
	others := make([]models.WishlistItem, 0, len(rows))
	for _, row := range rows {
		if row.WishlistID == moved.WishlistID && row.ProductID == moved.ProductID {
			continue
		}
		others = append(others, row)
	}
	return others
}

// successorOf returns the first item the moved row should precede: the
// lowest-positioned other item with position >= before. ok is false when
// before lies past the whole list.
func successorOf(others []models.WishlistItem, before int64) (models.WishlistItem, bool) {
	for _, row := range others {
		if row.Position >= before {
			return row, true
		}
	}
	return models.WishlistItem{}, false
}

// slotBefore computes the midpoint slot ahead of succPosition. The
// predecessor is the highest other position below succPosition, or 0 when
// inserting at the front. A collision means the gap between predecessor and
// successor is exhausted and the list needs renumbering first.
func slotBefore(others []models.WishlistItem, succPosition int64) slot {
	var pred int64
	for _, row := range others {
		if row.Position < succPosition && row.Position > pred {
			pred = row.Position
		}
	}

	mid := (pred + succPosition) / 2
	label := placementMiddle
	if pred == 0 {
		label = placementFront
	}
	return slot{
		position:  mid,
		label:     label,
		collision: mid == pred,
	}
}

// renumberedPositions assigns (rank+1)*Gap to every row in its current
// stored order.
func renumberedPositions(rows []models.WishlistItem) []int64 {
	positions := make([]int64, len(rows))
	for i := range rows {
		positions[i] = int64(i+1) * Gap
	}
	return positions
}

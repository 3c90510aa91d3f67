package domain

// CartLine is a cart entry joined against the catalog. Never stored.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal int64   `json:"subtotal"`
}

// CartView is the rendering-ready cart: lines in cart order and their total.
// Omitted lists cart product ids that have no catalog entry.
type CartView struct {
	Lines     []CartLine `json:"lines"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"item_count"`
	Omitted   []int64    `json:"omitted,omitempty"`
}

// Outcome tags the effect a cart or rating operation had on the session state.
type Outcome string

const (
	// OutcomeApplied means the state changed as requested.
	OutcomeApplied Outcome = "applied"
	// OutcomeAcceptedUnlisted means a cart change was stored for a product id
	// the catalog does not know. The entry renders no line.
	OutcomeAcceptedUnlisted Outcome = "accepted_unlisted"
	// OutcomeRemoved means a cart entry was deleted.
	OutcomeRemoved Outcome = "removed"
	// OutcomeNoOp means there was nothing to change.
	OutcomeNoOp Outcome = "noop"
	// OutcomeIgnoredOutOfRange means a rating outside 1..5, or a quantity
	// above MaxQuantity, was dropped.
	OutcomeIgnoredOutOfRange Outcome = "ignored_out_of_range"
)

// Changed reports whether the outcome altered the state.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeApplied, OutcomeAcceptedUnlisted, OutcomeRemoved:
		return true
	default:
		return false
	}
}

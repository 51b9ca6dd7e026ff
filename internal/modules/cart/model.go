package cart

// Entry is the canonical form of a cart line. Session data is
// untrusted: legacy clients wrote bare integers where entries belong,
// so every read goes through Normalize before business logic sees it.
type Entry struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// AddRequest is the payload for adding an item. Quantity and UnitPrice
// are deliberately loose-typed; malformed values are coerced, never
// rejected.
type AddRequest struct {
	PartID    string      `json:"part_id"`
	Quantity  interface{} `json:"quantity"`
	Name      string      `json:"name"`
	UnitPrice interface{} `json:"unit_price"`
}

// SummaryItem is one cart line with its computed total.
type SummaryItem struct {
	PartKey   string  `json:"part_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Summary is the full cart view.
type Summary struct {
	CartCount int           `json:"cart_count"`
	Items     []SummaryItem `json:"items"`
	Total     float64       `json:"total"`
}

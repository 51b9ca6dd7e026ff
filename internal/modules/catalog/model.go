package catalog

import (
	"github.com/shopspring/decimal"
)

// Condition describes the physical state of a part.
type Condition string

const (
	ConditionNew     Condition = "NEW"
	ConditionRebuilt Condition = "REBUILT"
	ConditionUsed    Condition = "USED"
)

// ValidCondition reports whether c is a known condition value.
func ValidCondition(c Condition) bool {
	switch c {
	case ConditionNew, ConditionRebuilt, ConditionUsed:
		return true
	}
	return false
}

// AutoPart is a part in the master catalog. Parts are immutable during
// checkout; order items snapshot the unit price at purchase time.
type AutoPart struct {
	ID           int64           `json:"part_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Condition    Condition       `json:"condition"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int             `json:"reorder_level"`
}

// SearchFilter narrows a catalog search.
type SearchFilter struct {
	Query     string // substring match on name, SKU, or category
	Category  string // exact category, case-insensitive
	Condition Condition
}

// CreatePartRequest is the payload for adding a part to the catalog.
type CreatePartRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Condition    string          `json:"condition"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int             `json:"reorder_level"`
}

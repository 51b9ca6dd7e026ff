package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is the per-(store, part) stock counter. QuantityOnHand is
// never allowed to go negative; every mutation runs through the ledger
// statements in ledger.go.
type Record struct {
	ID             int64 `json:"id"`
	StoreID        int64 `json:"store_id"`
	PartID         int64 `json:"part_id"`
	QuantityOnHand int   `json:"quantity_on_hand"`
}

// StockView is a record joined with its part for listings and reports.
type StockView struct {
	Record
	PartName     string          `json:"part_name"`
	PartSKU      string          `json:"part_sku"`
	PartPrice    decimal.Decimal `json:"part_price"`
	ReorderLevel int             `json:"reorder_level"`
	NeedsReorder bool            `json:"needs_reorder"`
}

// AvailabilityRequest asks whether a store can fulfil a quantity.
type AvailabilityRequest struct {
	StoreID  int64 `json:"store_id"`
	PartID   int64 `json:"part_id"`
	Quantity int   `json:"quantity"`
}

// AvailabilityResult reports current stock against a requested quantity.
type AvailabilityResult struct {
	Available      bool `json:"available"`
	QuantityOnHand int  `json:"quantity_on_hand"`
	Requested      int  `json:"requested"`
}

// InsufficientStockError is returned by DecrementStock when the
// requested quantity exceeds what is on hand. The ledger row is left
// untouched; there is no partial decrement.
type InsufficientStockError struct {
	PartID    int64
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for part %d: %d available", e.PartID, e.Available)
}

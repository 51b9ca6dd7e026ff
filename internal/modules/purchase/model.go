package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusReceived  Status = "RECEIVED"
	StatusCancelled Status = "CANCELLED"
)

// Supplier is a parts vendor the business replenishes from.
type Supplier struct {
	ID           int64  `json:"supplier_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// PurchaseOrder is a replenishment order sent to a supplier. Receiving
// it adds every line's quantity to the store's stock ledger.
type PurchaseOrder struct {
	ID           int64       `json:"po_id"`
	StoreID      int64       `json:"store_id"`
	SupplierID   int64       `json:"supplier_id"`
	OrderDate    time.Time   `json:"order_date"`
	ExpectedDate time.Time   `json:"expected_date"`
	Status       Status      `json:"status"`
	LineItems    []*LineItem `json:"line_items,omitempty"`
}

// LineItem is one (part, quantity, unit cost) line of a purchase order,
// unique per part within the order.
type LineItem struct {
	ID       int64           `json:"id"`
	POID     int64           `json:"po_id"`
	PartID   int64           `json:"part_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// TotalCost is quantity times unit cost.
func (l *LineItem) TotalCost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CreatePORequest is the payload for opening a purchase order.
type CreatePORequest struct {
	StoreID      int64  `json:"store_id"`
	SupplierID   int64  `json:"supplier_id"`
	ExpectedDate string `json:"expected_date"` // YYYY-MM-DD
}

// AddLineItemRequest is the payload for adding a line to a purchase
// order.
type AddLineItemRequest struct {
	PartID   int64           `json:"part_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreateSupplierRequest is the payload for registering a supplier.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

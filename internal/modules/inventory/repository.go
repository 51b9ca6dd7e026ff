package inventory

import "context"

// Repository defines read access to the stock ledger. Mutations go
// through the transaction-scoped statements in ledger.go.
type Repository interface {
	ListByStore(ctx context.Context, storeID int64) ([]*StockView, error)

	// GetQuantity returns the quantity on hand, 0 when no row exists.
	GetQuantity(ctx context.Context, storeID, partID int64) (int, error)

	// LowStock returns records at or below their part's reorder level.
	// storeID 0 means all stores.
	LowStock(ctx context.Context, storeID int64) ([]*StockView, error)
}

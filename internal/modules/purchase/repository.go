package purchase

import "context"

// Repository defines data access for suppliers and purchase orders.
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)

	CreatePO(ctx context.Context, po *PurchaseOrder) error
	GetPO(ctx context.Context, id int64) (*PurchaseOrder, error)
	ListPOsByStore(ctx context.Context, storeID int64, status Status) ([]*PurchaseOrder, error)
	AddLineItem(ctx context.Context, item *LineItem) error

	// Receive marks the purchase order RECEIVED and adds every line's
	// quantity to the store's stock ledger, atomically.
	Receive(ctx context.Context, po *PurchaseOrder) error
}

package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order with its items, payment, and
	// delivery, decrementing stock for every line, all inside a single
	// serializable unit of work. On any failure nothing is persisted.
	// On success the order's generated ids, timestamps, tracking
	// number, and PROCESSING status are filled in.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with items, payment, and delivery.
	GetOrderByID(ctx context.Context, id int64) (*Order, error)

	// ListOrdersByStore returns orders for a store, optionally filtered
	// by status, newest first.
	ListOrdersByStore(ctx context.Context, storeID int64, status Status) ([]*Order, error)

	// ListOrdersByCustomer returns a customer's orders, newest first.
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*Order, error)

	// SaveStatus persists an order's status together with its delivery
	// record, inserting the delivery when it has no id yet.
	SaveStatus(ctx context.Context, o *Order, d *Delivery) error
}

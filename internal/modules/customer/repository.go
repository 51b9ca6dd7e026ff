package customer

import "context"

// Repository defines customer account storage.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByUsername(ctx context.Context, username string) (*Customer, error)
}

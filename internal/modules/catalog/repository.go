package catalog

import "context"

// Repository defines data access for catalog parts.
type Repository interface {
	Create(ctx context.Context, p *AutoPart) error
	GetByID(ctx context.Context, id int64) (*AutoPart, error)
	GetBySKU(ctx context.Context, sku string) (*AutoPart, error)

	// GetByName matches the display name exactly, case-insensitively.
	GetByName(ctx context.Context, name string) (*AutoPart, error)

	Search(ctx context.Context, filter SearchFilter) ([]*AutoPart, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, p *AutoPart) error
	Delete(ctx context.Context, id int64) error
}

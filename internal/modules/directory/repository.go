package directory

import "context"

// StoreRepository defines store data storage.
type StoreRepository interface {
	CreateStore(ctx context.Context, s *Store) error
	GetStoreByID(ctx context.Context, id int64) (*Store, error)
	ListStores(ctx context.Context) ([]*Store, error)

	// FirstStore returns the store with the lowest id, or sql.ErrNoRows
	// when the directory is empty.
	FirstStore(ctx context.Context) (*Store, error)
}

// EmployeeRepository defines employee data storage.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployeeByID(ctx context.Context, id int64) (*Employee, error)
	GetEmployeeByUsername(ctx context.Context, username string) (*Employee, error)
	ListEmployeesByStore(ctx context.Context, storeID int64) ([]*Employee, error)
}

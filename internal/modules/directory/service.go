package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrStoreNotFound is returned when a store id does not exist.
	ErrStoreNotFound = errors.New("store not found")

	// ErrEmployeeNotFound is returned when an employee id does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Service defines store and employee directory logic.
type Service interface {
	CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error)
	GetStore(ctx context.Context, id int64) (*Store, error)
	ListStores(ctx context.Context) ([]*Store, error)

	// DefaultStore resolves the sole fulfilling store: the configured
	// default id when set, otherwise the first store in the directory.
	// Returns ErrStoreNotFound when no store exists at all.
	DefaultStore(ctx context.Context) (*Store, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context, storeID int64) ([]*Employee, error)
}

type service struct {
	storeRepo      StoreRepository
	employeeRepo   EmployeeRepository
	defaultStoreID int64
}

// NewService creates a new directory service. defaultStoreID may be 0,
// in which case the lowest store id is treated as the default.
func NewService(storeRepo StoreRepository, employeeRepo EmployeeRepository, defaultStoreID int64) Service {
	return &service{
		storeRepo:      storeRepo,
		employeeRepo:   employeeRepo,
		defaultStoreID: defaultStoreID,
	}
}

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	store := &Store{
		Name:         req.Name,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
	}
	if err := s.storeRepo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) GetStore(ctx context.Context, id int64) (*Store, error) {
	store, err := s.storeRepo.GetStoreByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return store, err
}

func (s *service) ListStores(ctx context.Context) ([]*Store, error) {
	return s.storeRepo.ListStores(ctx)
}

func (s *service) DefaultStore(ctx context.Context) (*Store, error) {
	if s.defaultStoreID != 0 {
		return s.GetStore(ctx, s.defaultStoreID)
	}
	store, err := s.storeRepo.FirstStore(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return store, err
}

func (s *service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if _, err := s.GetStore(ctx, req.StoreID); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &Employee{
		StoreID:      req.StoreID,
		FullName:     req.FullName,
		Role:         req.Role,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.employeeRepo.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	return employee, err
}

func (s *service) ListEmployees(ctx context.Context, storeID int64) ([]*Employee, error) {
	return s.employeeRepo.ListEmployeesByStore(ctx, storeID)
}

package purchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
)

var (
	// ErrPONotFound is returned when a purchase order id does not exist.
	ErrPONotFound = errors.New("purchase order not found")

	// ErrSupplierNotFound is returned when a supplier id does not exist.
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrAlreadyReceived is returned when receiving a purchase order
	// twice; stock must only be added once.
	ErrAlreadyReceived = errors.New("purchase order already received")
)

// Service defines purchasing and receiving business logic.
type Service interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)

	CreatePO(ctx context.Context, req CreatePORequest) (*PurchaseOrder, error)
	GetPO(ctx context.Context, id int64) (*PurchaseOrder, error)
	ListPOs(ctx context.Context, storeID int64, status string) ([]*PurchaseOrder, error)
	AddLineItem(ctx context.Context, poID int64, req AddLineItemRequest) (*LineItem, error)

	// Receive marks the order RECEIVED and replenishes stock for every
	// line through the inventory ledger.
	Receive(ctx context.Context, poID int64) (*PurchaseOrder, error)
}

type service struct {
	repo      Repository
	catalog   catalog.Service
	directory directory.Service
}

// NewService creates a new purchasing service.
func NewService(repo Repository, catalogService catalog.Service, directoryService directory.Service) Service {
	return &service{repo: repo, catalog: catalogService, directory: directoryService}
}

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	supplier := &Supplier{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *service) CreatePO(ctx context.Context, req CreatePORequest) (*PurchaseOrder, error) {
	if _, err := s.directory.GetStore(ctx, req.StoreID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetSupplier(ctx, req.SupplierID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	expected, err := time.Parse("2006-01-02", req.ExpectedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expected_date: %w", err)
	}

	po := &PurchaseOrder{
		StoreID:      req.StoreID,
		SupplierID:   req.SupplierID,
		ExpectedDate: expected,
		Status:       StatusPending,
	}
	if err := s.repo.CreatePO(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *service) GetPO(ctx context.Context, id int64) (*PurchaseOrder, error) {
	po, err := s.repo.GetPO(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPONotFound
	}
	return po, err
}

func (s *service) ListPOs(ctx context.Context, storeID int64, status string) ([]*PurchaseOrder, error) {
	return s.repo.ListPOsByStore(ctx, storeID, Status(status))
}

func (s *service) AddLineItem(ctx context.Context, poID int64, req AddLineItemRequest) (*LineItem, error) {
	po, err := s.GetPO(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.Status == StatusReceived {
		return nil, ErrAlreadyReceived
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if req.UnitCost.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("unit_cost must be positive")
	}
	if _, err := s.catalog.GetPart(ctx, req.PartID); err != nil {
		return nil, err
	}

	item := &LineItem{
		POID:     po.ID,
		PartID:   req.PartID,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
	}
	if err := s.repo.AddLineItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Receive(ctx context.Context, poID int64) (*PurchaseOrder, error) {
	po, err := s.GetPO(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.Status == StatusReceived {
		return nil, ErrAlreadyReceived
	}

	if err := s.repo.Receive(ctx, po); err != nil {
		return nil, err
	}
	po.Status = StatusReceived
	return po, nil
}

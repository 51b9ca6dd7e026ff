package inventory

import (
	"context"
	"fmt"
)

// Service defines stock ledger read logic.
type Service interface {
	ListByStore(ctx context.Context, storeID int64) ([]*StockView, error)
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error)
	LowStock(ctx context.Context, storeID int64) ([]*StockView, error)
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListByStore(ctx context.Context, storeID int64) ([]*StockView, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.StoreID == 0 || req.PartID == 0 {
		return nil, fmt.Errorf("store_id and part_id are required")
	}
	onHand, err := s.repo.GetQuantity(ctx, req.StoreID, req.PartID)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{
		Available:      onHand >= req.Quantity,
		QuantityOnHand: onHand,
		Requested:      req.Quantity,
	}, nil
}

func (s *service) LowStock(ctx context.Context, storeID int64) ([]*StockView, error) {
	return s.repo.LowStock(ctx, storeID)
}

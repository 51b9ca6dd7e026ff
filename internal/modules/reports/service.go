package reports

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partshub/autoparts-backend/internal/modules/directory"
	"github.com/partshub/autoparts-backend/internal/modules/order"
)

// Service defines reporting business logic.
type Service interface {
	DailySales(ctx context.Context, storeID int64, status string, w Window) ([]*DailySalesRow, error)
	Inventory(ctx context.Context, storeID int64) (*InventoryReport, error)
	EmployeePerformance(ctx context.Context, storeID int64, w Window) ([]*EmployeePerformanceRow, error)
}

type service struct {
	repo      Repository
	directory directory.Service
}

// NewService creates a new reporting service.
func NewService(repo Repository, directoryService directory.Service) Service {
	return &service{repo: repo, directory: directoryService}
}

func (s *service) DailySales(ctx context.Context, storeID int64, status string, w Window) ([]*DailySalesRow, error) {
	if _, err := s.directory.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	status = strings.ToUpper(status)
	if status != "" && !order.ValidStatus(order.Status(status)) {
		return nil, &order.InvalidStatusError{Value: status}
	}
	return s.repo.DailySales(ctx, storeID, status, w)
}

func (s *service) Inventory(ctx context.Context, storeID int64) (*InventoryReport, error) {
	if _, err := s.directory.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.StockValues(ctx, storeID)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{StoreID: storeID, Rows: rows, TotalValue: decimal.Zero}
	for _, row := range rows {
		report.TotalValue = report.TotalValue.Add(row.StockValue)
		if row.Quantity == 0 {
			report.OutOfStock++
		}
		if row.Quantity <= row.ReorderLevel {
			report.LowStock++
		}
	}
	return report, nil
}

func (s *service) EmployeePerformance(ctx context.Context, storeID int64, w Window) ([]*EmployeePerformanceRow, error) {
	if _, err := s.directory.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.repo.EmployeePerformance(ctx, storeID, w)
}

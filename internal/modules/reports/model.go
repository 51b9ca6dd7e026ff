package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesRow aggregates one day of completed orders for a store.
type DailySalesRow struct {
	Day          time.Time       `json:"day"`
	OrderCount   int             `json:"order_count"`
	UnitsSold    int             `json:"units_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// StockValueRow values one part's stock at its current list price.
type StockValueRow struct {
	PartID       int64           `json:"part_id"`
	PartName     string          `json:"part_name"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// InventoryReport is the per-store stock valuation with low-stock and
// out-of-stock counts.
type InventoryReport struct {
	StoreID    int64            `json:"store_id"`
	Rows       []*StockValueRow `json:"rows"`
	TotalValue decimal.Decimal  `json:"total_value"`
	LowStock   int              `json:"low_stock_count"`
	OutOfStock int              `json:"out_of_stock_count"`
}

// EmployeePerformanceRow counts the deliveries an employee handled in
// the report window.
type EmployeePerformanceRow struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	Deliveries int    `json:"deliveries"`
	Delivered  int    `json:"delivered"`
}

// Window bounds a report. Zero values mean unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

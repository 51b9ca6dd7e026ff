package reports

import (
	"context"
	"database/sql"
	"time"
)

// Repository runs the aggregate queries behind the reports.
type Repository interface {
	// DailySales aggregates per day. An empty status means every status
	// except CANCELLED.
	DailySales(ctx context.Context, storeID int64, status string, w Window) ([]*DailySalesRow, error)
	StockValues(ctx context.Context, storeID int64) ([]*StockValueRow, error)
	EmployeePerformance(ctx context.Context, storeID int64, w Window) ([]*EmployeePerformanceRow, error)
}

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) DailySales(ctx context.Context, storeID int64, status string, w Window) ([]*DailySalesRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date_trunc('day', o.order_date) AS day,
		       COUNT(DISTINCT o.order_id)      AS order_count,
		       COALESCE(SUM(i.quantity), 0)    AS units_sold,
		       COALESCE(SUM(i.quantity * i.unit_price), 0) AS total_revenue
		FROM customer_order o
		JOIN orderitem i ON i.order_id = o.order_id
		WHERE o.store_id = $1
		  AND ($2 = '' AND o.status <> 'CANCELLED' OR o.status = $2)
		  AND ($3::timestamptz IS NULL OR o.order_date >= $3)
		  AND ($4::timestamptz IS NULL OR o.order_date < $4)
		GROUP BY day
		ORDER BY day`,
		storeID, status, nullTime(w.From), nullTime(w.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*DailySalesRow
	for rows.Next() {
		row := &DailySalesRow{}
		if err := rows.Scan(&row.Day, &row.OrderCount, &row.UnitsSold, &row.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresRepo) StockValues(ctx context.Context, storeID int64) ([]*StockValueRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.part_id, p.name, p.sku, i.quantity_on_hand, p.reorder_level,
		       p.unit_price, i.quantity_on_hand * p.unit_price AS stock_value
		FROM inventory i
		JOIN part p ON p.part_id = i.part_id
		WHERE i.store_id = $1
		ORDER BY stock_value DESC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*StockValueRow
	for rows.Next() {
		row := &StockValueRow{}
		if err := rows.Scan(&row.PartID, &row.PartName, &row.SKU,
			&row.Quantity, &row.ReorderLevel, &row.UnitPrice, &row.StockValue); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresRepo) EmployeePerformance(ctx context.Context, storeID int64, w Window) ([]*EmployeePerformanceRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.employee_id, e.full_name,
		       COUNT(d.delivery_id) AS deliveries,
		       COUNT(d.delivery_id) FILTER (WHERE d.delivery_status = 'DELIVERED') AS delivered
		FROM employee e
		LEFT JOIN delivery d ON d.employee_id = e.employee_id
		  AND ($2::timestamptz IS NULL OR d.ship_date >= $2)
		  AND ($3::timestamptz IS NULL OR d.ship_date < $3)
		WHERE e.store_id = $1
		GROUP BY e.employee_id, e.full_name
		ORDER BY deliveries DESC, e.full_name`,
		storeID, nullTime(w.From), nullTime(w.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*EmployeePerformanceRow
	for rows.Next() {
		row := &EmployeePerformanceRow{}
		if err := rows.Scan(&row.EmployeeID, &row.FullName, &row.Deliveries, &row.Delivered); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

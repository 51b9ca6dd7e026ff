package inventory

import (
	"context"
	"database/sql"
	"errors"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const stockViewQuery = `
	SELECT i.id, i.store_id, i.part_id, i.quantity_on_hand,
	       p.name, p.sku, p.unit_price, p.reorder_level
	FROM inventory i
	JOIN part p ON p.part_id = i.part_id`

func (r *postgresRepo) ListByStore(ctx context.Context, storeID int64) ([]*StockView, error) {
	rows, err := r.db.QueryContext(ctx,
		stockViewQuery+` WHERE i.store_id=$1 ORDER BY p.name`, storeID)
	if err != nil {
		return nil, err
	}
	return collectStockViews(rows)
}

func (r *postgresRepo) GetQuantity(ctx context.Context, storeID, partID int64) (int, error) {
	var qty int
	err := r.db.QueryRowContext(ctx,
		`SELECT quantity_on_hand FROM inventory WHERE store_id=$1 AND part_id=$2`,
		storeID, partID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return qty, err
}

func (r *postgresRepo) LowStock(ctx context.Context, storeID int64) ([]*StockView, error) {
	query := stockViewQuery + ` WHERE i.quantity_on_hand <= p.reorder_level`
	args := []interface{}{}
	if storeID != 0 {
		query += ` AND i.store_id=$1`
		args = append(args, storeID)
	}
	query += ` ORDER BY i.quantity_on_hand ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectStockViews(rows)
}

func collectStockViews(rows *sql.Rows) ([]*StockView, error) {
	defer rows.Close()
	var views []*StockView
	for rows.Next() {
		v := &StockView{}
		if err := rows.Scan(&v.ID, &v.StoreID, &v.PartID, &v.QuantityOnHand,
			&v.PartName, &v.PartSKU, &v.PartPrice, &v.ReorderLevel); err != nil {
			return nil, err
		}
		v.NeedsReorder = v.QuantityOnHand <= v.ReorderLevel
		views = append(views, v)
	}
	return views, rows.Err()
}

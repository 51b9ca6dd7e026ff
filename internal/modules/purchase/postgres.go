package purchase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/partshub/autoparts-backend/internal/database"
	"github.com/partshub/autoparts-backend/internal/modules/inventory"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateSupplier(ctx context.Context, s *Supplier) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO supplier (name, contact_email, phone, address)
		VALUES ($1,$2,$3,$4)
		RETURNING supplier_id`,
		s.Name, s.ContactEmail, s.Phone, s.Address).Scan(&s.ID)
}

func (r *postgresRepo) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	s := &Supplier{}
	err := r.db.QueryRowContext(ctx, `
		SELECT supplier_id, name, contact_email, phone, address
		FROM supplier WHERE supplier_id=$1`, id).Scan(
		&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.Address)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT supplier_id, name, contact_email, phone, address
		FROM supplier ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.Address); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *postgresRepo) CreatePO(ctx context.Context, po *PurchaseOrder) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO purchase_order (store_id, supplier_id, expected_date, status)
		VALUES ($1,$2,$3,$4)
		RETURNING po_id, order_date`,
		po.StoreID, po.SupplierID, po.ExpectedDate, po.Status).Scan(&po.ID, &po.OrderDate)
}

func (r *postgresRepo) GetPO(ctx context.Context, id int64) (*PurchaseOrder, error) {
	po := &PurchaseOrder{}
	err := r.db.QueryRowContext(ctx, `
		SELECT po_id, store_id, supplier_id, order_date, expected_date, status
		FROM purchase_order WHERE po_id=$1`, id).Scan(
		&po.ID, &po.StoreID, &po.SupplierID, &po.OrderDate, &po.ExpectedDate, &po.Status)
	if err != nil {
		return nil, err
	}
	po.LineItems, err = r.listLineItems(ctx, po.ID)
	return po, err
}

func (r *postgresRepo) ListPOsByStore(ctx context.Context, storeID int64, status Status) ([]*PurchaseOrder, error) {
	query := `SELECT po_id, store_id, supplier_id, order_date, expected_date, status
	          FROM purchase_order WHERE store_id=$1`
	args := []interface{}{storeID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY order_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pos []*PurchaseOrder
	for rows.Next() {
		po := &PurchaseOrder{}
		if err := rows.Scan(&po.ID, &po.StoreID, &po.SupplierID, &po.OrderDate, &po.ExpectedDate, &po.Status); err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}
	return pos, rows.Err()
}

func (r *postgresRepo) AddLineItem(ctx context.Context, item *LineItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO order_item (purchase_order_id, part_id, quantity, unit_cost)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		item.POID, item.PartID, item.Quantity, item.UnitCost).Scan(&item.ID)
}

// Receive shares the stock ledger statements with checkout so both
// flows obey the same locking discipline. The status guard lives inside
// the transaction: a concurrent or retried receive finds the order
// already RECEIVED and must not add stock a second time.
func (r *postgresRepo) Receive(ctx context.Context, po *PurchaseOrder) error {
	return database.WithRetry(ctx, r.db, database.SerializableTxOptions(), func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE purchase_order SET status=$1 WHERE po_id=$2 AND status <> $1`,
			StatusReceived, po.ID)
		if err != nil {
			return fmt.Errorf("mark received: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("mark received rows affected: %w", err)
		}
		if affected == 0 {
			return ErrAlreadyReceived
		}

		for _, line := range po.LineItems {
			if err := inventory.AddStock(ctx, tx, po.StoreID, line.PartID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepo) listLineItems(ctx context.Context, poID int64) ([]*LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, purchase_order_id, part_id, quantity, unit_cost
		FROM order_item WHERE purchase_order_id=$1 ORDER BY id`, poID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*LineItem
	for rows.Next() {
		item := &LineItem{}
		if err := rows.Scan(&item.ID, &item.POID, &item.PartID, &item.Quantity, &item.UnitCost); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

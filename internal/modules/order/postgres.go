package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/partshub/autoparts-backend/internal/database"
	"github.com/partshub/autoparts-backend/internal/modules/inventory"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// trackingNumber is unique by construction: the order id is unique and
// the timestamp disambiguates any future re-issue.
func trackingNumber(orderID int64, now time.Time) string {
	return fmt.Sprintf("TRK%d%s", orderID, now.UTC().Format("20060102150405"))
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	return database.WithRetry(ctx, r.db, database.SerializableTxOptions(), func(tx *sql.Tx) error {
		// Reserve stock first; a shortfall aborts before anything is
		// written.
		for _, item := range o.Items {
			if err := inventory.DecrementStock(ctx, tx, o.StoreID, item.PartID, item.Quantity); err != nil {
				return err
			}
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO customer_order (customer_id, store_id, status)
			VALUES ($1, $2, $3)
			RETURNING order_id, order_date`,
			o.CustomerID, o.StoreID, StatusPending).Scan(&o.ID, &o.OrderDate)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range o.Items {
			item.OrderID = o.ID
			err := tx.QueryRowContext(ctx, `
				INSERT INTO orderitem (order_id, part_id, quantity, unit_price)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				o.ID, item.PartID, item.Quantity, item.UnitPrice).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		o.Payment.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO payment (order_id, payment_method, amount, card_last_four_digit, authorization_code)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING payment_id, paid_date`,
			o.ID, o.Payment.Method, o.Payment.Amount,
			nullable(o.Payment.CardLastFour), o.Payment.AuthorizationCode).Scan(&o.Payment.ID, &o.Payment.PaidDate)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		o.Delivery.OrderID = o.ID
		o.Delivery.TrackingNumber = trackingNumber(o.ID, time.Now())
		err = tx.QueryRowContext(ctx, `
			INSERT INTO delivery (order_id, tracking_number, delivery_status)
			VALUES ($1, $2, $3)
			RETURNING delivery_id`,
			o.ID, o.Delivery.TrackingNumber, o.Delivery.Status).Scan(&o.Delivery.ID)
		if err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE customer_order SET status=$1 WHERE order_id=$2`,
			StatusProcessing, o.ID)
		if err != nil {
			return fmt.Errorf("advance order status: %w", err)
		}
		o.Status = StatusProcessing

		return nil
	})
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, customer_id, store_id, order_date, status
		FROM customer_order WHERE order_id=$1`, id).Scan(
		&o.ID, &o.CustomerID, &o.StoreID, &o.OrderDate, &o.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Payment, err = r.getPayment(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Delivery, err = r.getDelivery(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListOrdersByStore(ctx context.Context, storeID int64, status Status) ([]*Order, error) {
	query := `SELECT order_id, customer_id, store_id, order_date, status
	          FROM customer_order WHERE store_id=$1`
	args := []interface{}{storeID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT order_id, customer_id, store_id, order_date, status
		FROM customer_order WHERE customer_id=$1 ORDER BY order_date DESC`, customerID)
}

func (r *postgresRepo) SaveStatus(ctx context.Context, o *Order, d *Delivery) error {
	return database.WithTransaction(ctx, r.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE customer_order SET status=$1 WHERE order_id=$2`, o.Status, o.ID)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if d.ID == 0 {
			err = tx.QueryRowContext(ctx, `
				INSERT INTO delivery (order_id, ship_date, delivery_date, employee_id, tracking_number, delivery_status)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING delivery_id`,
				d.OrderID, d.ShipDate, d.DeliveryDate, d.EmployeeID, d.TrackingNumber, d.Status).Scan(&d.ID)
			if err != nil {
				return fmt.Errorf("insert delivery: %w", err)
			}
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE delivery
			SET ship_date=$1, delivery_date=$2, employee_id=$3, delivery_status=$4
			WHERE delivery_id=$5`,
			d.ShipDate, d.DeliveryDate, d.EmployeeID, d.Status, d.ID)
		if err != nil {
			return fmt.Errorf("update delivery: %w", err)
		}
		return nil
	})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.OrderDate, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID int64) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.part_id, p.name, p.sku, i.quantity, i.unit_price
		FROM orderitem i
		JOIN part p ON p.part_id = i.part_id
		WHERE i.order_id=$1 ORDER BY i.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.PartID,
			&item.PartName, &item.PartSKU, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) getPayment(ctx context.Context, orderID int64) (*Payment, error) {
	p := &Payment{}
	var lastFour sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT payment_id, order_id, payment_method, amount, paid_date, card_last_four_digit, authorization_code
		FROM payment WHERE order_id=$1`, orderID).Scan(
		&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.PaidDate, &lastFour, &p.AuthorizationCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CardLastFour = lastFour.String
	return p, nil
}

func (r *postgresRepo) getDelivery(ctx context.Context, orderID int64) (*Delivery, error) {
	d := &Delivery{}
	var employeeID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT delivery_id, order_id, ship_date, delivery_date, employee_id, tracking_number, delivery_status
		FROM delivery WHERE order_id=$1`, orderID).Scan(
		&d.ID, &d.OrderID, &d.ShipDate, &d.DeliveryDate, &employeeID, &d.TrackingNumber, &d.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if employeeID.Valid {
		d.EmployeeID = &employeeID.Int64
	}
	return d, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

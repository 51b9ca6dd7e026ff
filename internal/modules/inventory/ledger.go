package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Ledger statements shared by checkout and purchase-order receiving.
// Both callers run them inside their own serializable transaction so
// concurrent decrements of the same row cannot both observe the
// pre-decrement quantity.

// DecrementStock atomically subtracts qty from the (store, part) row.
// The conditional UPDATE guarantees the counter never goes negative:
// when the guard fails no row is touched and an InsufficientStockError
// carrying the current quantity is returned.
func DecrementStock(ctx context.Context, tx *sql.Tx, storeID, partID int64, qty int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE inventory
		SET quantity_on_hand = quantity_on_hand - $1
		WHERE store_id = $2
		  AND part_id = $3
		  AND quantity_on_hand >= $1`,
		qty, storeID, partID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity_on_hand FROM inventory WHERE store_id=$1 AND part_id=$2`,
		storeID, partID).Scan(&available)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read stock: %w", err)
	}
	return &InsufficientStockError{PartID: partID, Available: available}
}

// AddStock adds qty to the (store, part) row, creating it from zero if
// it does not exist yet. Used by purchase-order receiving.
func AddStock(ctx context.Context, tx *sql.Tx, storeID, partID int64, qty int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO inventory (store_id, part_id, quantity_on_hand)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_id, part_id)
		DO UPDATE SET quantity_on_hand = inventory.quantity_on_hand + EXCLUDED.quantity_on_hand`,
		storeID, partID, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

package customer

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `customer_id, full_name, customer_email, customer_phone, username, password, created_at`

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO customer (full_name, customer_email, customer_phone, username, password)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING customer_id, created_at`,
		c.FullName, c.Email, c.Phone, c.Username, c.PasswordHash).Scan(&c.ID, &c.CreatedAt)
}

func scanCustomer(scan func(...interface{}) error) (*Customer, error) {
	c := &Customer{}
	err := scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customer WHERE customer_id=$1`, id)
	return scanCustomer(row.Scan)
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customer WHERE username=$1`, username)
	return scanCustomer(row.Scan)
}

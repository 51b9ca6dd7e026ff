package directory

import (
	"context"
	"database/sql"
)

type storePostgresRepo struct{ db *sql.DB }

func NewStorePostgresRepository(db *sql.DB) StoreRepository { return &storePostgresRepo{db: db} }

const storeColumns = `store_id, name, phone, address_line1, address_line2, city, state, postal_code`

func (r *storePostgresRepo) CreateStore(ctx context.Context, s *Store) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO store (name, phone, address_line1, address_line2, city, state, postal_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING store_id`,
		s.Name, s.Phone, s.AddressLine1, nullable(s.AddressLine2), s.City, s.State, s.PostalCode).Scan(&s.ID)
}

func scanStore(scan func(...interface{}) error) (*Store, error) {
	s := &Store{}
	var line2 sql.NullString
	err := scan(&s.ID, &s.Name, &s.Phone, &s.AddressLine1, &line2, &s.City, &s.State, &s.PostalCode)
	if err != nil {
		return nil, err
	}
	s.AddressLine2 = line2.String
	return s, nil
}

func (r *storePostgresRepo) GetStoreByID(ctx context.Context, id int64) (*Store, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+storeColumns+` FROM store WHERE store_id=$1`, id)
	return scanStore(row.Scan)
}

func (r *storePostgresRepo) ListStores(ctx context.Context) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+storeColumns+` FROM store ORDER BY store_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s, err := scanStore(rows.Scan)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *storePostgresRepo) FirstStore(ctx context.Context) (*Store, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+storeColumns+` FROM store ORDER BY store_id LIMIT 1`)
	return scanStore(row.Scan)
}

type employeePostgresRepo struct{ db *sql.DB }

func NewEmployeePostgresRepository(db *sql.DB) EmployeeRepository { return &employeePostgresRepo{db: db} }

const employeeColumns = `employee_id, store_id, full_name, role, email, username, password`

func (r *employeePostgresRepo) CreateEmployee(ctx context.Context, e *Employee) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO employee (store_id, full_name, role, email, username, password)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING employee_id`,
		e.StoreID, e.FullName, e.Role, e.Email, e.Username, e.PasswordHash).Scan(&e.ID)
}

func scanEmployee(scan func(...interface{}) error) (*Employee, error) {
	e := &Employee{}
	err := scan(&e.ID, &e.StoreID, &e.FullName, &e.Role, &e.Email, &e.Username, &e.PasswordHash)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeePostgresRepo) GetEmployeeByID(ctx context.Context, id int64) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employee WHERE employee_id=$1`, id)
	return scanEmployee(row.Scan)
}

func (r *employeePostgresRepo) GetEmployeeByUsername(ctx context.Context, username string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employee WHERE username=$1`, username)
	return scanEmployee(row.Scan)
}

func (r *employeePostgresRepo) ListEmployeesByStore(ctx context.Context, storeID int64) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employee WHERE store_id=$1 ORDER BY full_name`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

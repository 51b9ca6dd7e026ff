package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const partColumns = `part_id, sku, name, category, condition, unit_price, reorder_level`

func (r *postgresRepo) Create(ctx context.Context, p *AutoPart) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO part (sku, name, category, condition, unit_price, reorder_level)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING part_id`,
		p.SKU, p.Name, p.Category, p.Condition, p.UnitPrice, p.ReorderLevel).Scan(&p.ID)
}

func scanPart(scan func(...interface{}) error) (*AutoPart, error) {
	p := &AutoPart{}
	err := scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Condition, &p.UnitPrice, &p.ReorderLevel)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*AutoPart, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM part WHERE part_id=$1`, id)
	return scanPart(row.Scan)
}

func (r *postgresRepo) GetBySKU(ctx context.Context, sku string) (*AutoPart, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM part WHERE sku=$1`, sku)
	return scanPart(row.Scan)
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*AutoPart, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM part WHERE LOWER(name)=LOWER($1)`, name)
	return scanPart(row.Scan)
}

func (r *postgresRepo) Search(ctx context.Context, filter SearchFilter) ([]*AutoPart, error) {
	query := `SELECT ` + partColumns + ` FROM part WHERE 1=1`
	args := []interface{}{}
	n := 1

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d OR category ILIKE $%d)`, n, n, n)
		args = append(args, "%"+filter.Query+"%")
		n++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(` AND LOWER(category)=LOWER($%d)`, n)
		args = append(args, filter.Category)
		n++
	}
	if filter.Condition != "" {
		query += fmt.Sprintf(` AND condition=$%d`, n)
		args = append(args, filter.Condition)
		n++
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*AutoPart
	for rows.Next() {
		p, err := scanPart(rows.Scan)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *postgresRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM part ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *AutoPart) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE part SET sku=$1, name=$2, category=$3, condition=$4, unit_price=$5, reorder_level=$6
		WHERE part_id=$7`,
		p.SKU, p.Name, p.Category, p.Condition, p.UnitPrice, p.ReorderLevel, p.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM part WHERE part_id=$1`, id)
	return err
}

package catalog

import (
	"context"
	"database/sql"
)

// PostgresRepository implements Repository against the `products` and
// `categories` tables.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, image_url, category_id, featured, active, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, image_url, category_id, featured, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			image_url = $4,
			category_id = $5,
			featured = $6,
			active = $7,
			updated_at = now()::text
		WHERE id = $8
		RETURNING created_at, updated_at
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	listCategoriesQuery = `
		SELECT id, name, order_index, active
		FROM categories
		ORDER BY order_index ASC
	`
	insertCategoryQuery = `
		INSERT INTO categories (name, order_index, active)
		VALUES ($1,$2,$3)
		RETURNING id
	`
	updateCategoryQuery = `
		UPDATE categories
		SET name = $1, order_index = $2, active = $3
		WHERE id = $4
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p           Product
		description sql.NullString
		imageURL    sql.NullString
		categoryID  sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &imageURL, &categoryID, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.CategoryID = categoryID.String
	return p, nil
}

func (r *PostgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID, p.Featured, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, updateProductQuery,
		p.Name, p.Description, p.Price, p.ImageURL, p.CategoryID, p.Featured, p.Active, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.OrderIndex, &c.Active); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c Category) (Category, error) {
	err := r.db.QueryRowContext(ctx, insertCategoryQuery, c.Name, c.OrderIndex, c.Active).Scan(&c.ID)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c Category) (Category, error) {
	res, err := r.db.ExecContext(ctx, updateCategoryQuery, c.Name, c.OrderIndex, c.Active, c.ID)
	if err != nil {
		return Category{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

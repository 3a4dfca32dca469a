package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/product/domain"
)

var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, name, description, category, price, cost, stock, min_stock,
       image_url, barcode, barcode_image, model3d_file, created_at, updated_at`

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SetModel3DFile(ctx context.Context, id, filePath string) (*domain.Product, error)
	IncrementStock(ctx context.Context, id string, amount int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListTopProductsByStock(ctx context.Context, limit int) ([]domain.Product, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	var description, imageURL, barcode, barcodeImage, model3DFile sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &description, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
		&imageURL, &barcode, &barcodeImage, &model3DFile, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if barcode.Valid {
		p.Barcode = &barcode.String
	}
	if barcodeImage.Valid {
		p.BarcodeImage = &barcodeImage.String
	}
	if model3DFile.Valid {
		p.Model3DFile = &model3DFile.String
	}
	return &p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) getProductBy(ctx context.Context, field, value string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + field + ` = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("getProductBy "+field+": query failed", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getProductBy(ctx, "id", id)
}

func (r *postgresProductRepository) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return r.getProductBy(ctx, "barcode", barcode)
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, category, price, cost, stock, min_stock,
                                    image_url, barcode, barcode_image)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
              RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, nullable(p.Description), p.Category, p.Price, p.Cost, p.Stock, p.MinStock,
		nullable(p.ImageURL), nullable(p.Barcode), nullable(p.BarcodeImage),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

// UpdateProduct menerapkan partial update; hanya kolom dari field non-nil yang ikut SET.
func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Cost != nil {
		add("cost", *req.Cost)
	}
	if req.Stock != nil {
		add("stock", *req.Stock)
	}
	if req.MinStock != nil {
		add("min_stock", *req.MinStock)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if len(sets) == 0 {
		return r.GetProductByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s, updated_at = NOW() WHERE id = $%d RETURNING `+productColumns,
		strings.Join(sets, ", "), len(args))

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("UpdateProduct: exec failed", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	// Alert dan snapshot sale item yang mereferensikan produk ini TIDAK ikut
	// dihapus; riwayat penjualan adalah record immutable.
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresProductRepository) SetModel3DFile(ctx context.Context, id, filePath string) (*domain.Product, error) {
	query := `UPDATE products SET model3d_file = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, filePath, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("SetModel3DFile: exec failed", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) IncrementStock(ctx context.Context, id string, amount int) (*domain.Product, error) {
	query := `UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2 RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, amount, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("IncrementStock: exec failed", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category ASC`)
	if err != nil {
		logger.Error("ListCategories: query failed", err)
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			logger.Error("ListCategories: scan failed", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresProductRepository) ListTopProductsByStock(ctx context.Context, limit int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY stock ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("ListTopProductsByStock: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error("ListTopProductsByStock: scan failed", err)
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

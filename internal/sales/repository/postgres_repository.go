package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock for sale item")
)

const saleColumns = `id, date, customer_name, subtotal, tax, total, status, notes`

// isCheckViolation mengenali pelanggaran CHECK constraint dari driver pgx
// (kode '23514', di sini guard stock >= 0).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

type SaleRepository interface {
	// CreateSaleWithItems menyimpan sale, item-itemnya, dan pengurangan stok
	// produk dalam SATU transaksi; gagal di tengah berarti rollback semua.
	CreateSaleWithItems(ctx context.Context, sale *domain.Sale, items []domain.SaleItem) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus) error
	ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error)
}

type postgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) SaleRepository {
	return &postgresSaleRepository{db: db}
}

func (r *postgresSaleRepository) CreateSaleWithItems(ctx context.Context, sale *domain.Sale, items []domain.SaleItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback() // Rollback jika tidak di-commit

	saleQuery := `INSERT INTO sales (customer_name, subtotal, tax, total, status, notes)
                  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, date`

	var notes sql.NullString
	if sale.Notes != nil {
		notes = sql.NullString{String: *sale.Notes, Valid: true}
	}
	err = tx.QueryRowContext(ctx, saleQuery,
		sale.CustomerName, sale.Subtotal, sale.Tax, sale.Total, sale.Status, notes,
	).Scan(&sale.ID, &sale.Date)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to insert sale", err)
		return err
	}

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price)
                                             VALUES ($1, $2, $3, $4, $5) RETURNING id`)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range items {
		items[i].SaleID = sale.ID
		err = itemStmt.QueryRowContext(ctx, items[i].SaleID, items[i].ProductID, items[i].ProductName, items[i].Quantity, items[i].Price).
			Scan(&items[i].ID)
		if err != nil {
			logger.Error("CreateSaleWithItems: failed to insert sale item", err)
			return err // Rollback akan terjadi
		}

		if err := r.decrementStock(ctx, tx, items[i].ProductID, items[i].Quantity); err != nil {
			return err
		}
	}
	sale.Items = items

	return tx.Commit()
}

// decrementStock mengurangi stok dengan guard anti-underflow; 0 row berarti
// stok tidak cukup (atau produk hilang) dan seluruh sale dibatalkan.
func (r *postgresSaleRepository) decrementStock(ctx context.Context, tx *sql.Tx, productID string, quantity int) error {
	query := `UPDATE products SET stock = stock - $1, updated_at = NOW()
              WHERE id = $2 AND (stock - $1) >= 0`
	res, err := tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		if isCheckViolation(err) {
			return ErrInsufficientStock
		}
		logger.Error("decrementStock: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func scanSale(row interface{ Scan(...interface{}) error }) (*domain.Sale, error) {
	var s domain.Sale
	var notes sql.NullString
	err := row.Scan(&s.ID, &s.Date, &s.CustomerName, &s.Subtotal, &s.Tax, &s.Total, &s.Status, &notes)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}

func (r *postgresSaleRepository) listSales(ctx context.Context, query string, args ...interface{}) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("listSales: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			logger.Error("listSales: scan failed", err)
			return nil, err
		}
		sales = append(sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		items, err := r.getSaleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (r *postgresSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return r.listSales(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY date DESC`)
}

func (r *postgresSaleRepository) ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	return r.listSales(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY date DESC LIMIT $1`, limit)
}

func (r *postgresSaleRepository) GetSaleByID(ctx context.Context, id string) (*domain.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		logger.Error("GetSaleByID: query failed", err)
		return nil, err
	}

	items, err := r.getSaleItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

func (r *postgresSaleRepository) getSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, product_name, quantity, price FROM sale_items WHERE sale_id = $1`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		logger.Error("getSaleItems: query failed", err)
		return nil, err
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		var i domain.SaleItem
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProductID, &i.ProductName, &i.Quantity, &i.Price); err != nil {
			logger.Error("getSaleItems: scan failed", err)
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *postgresSaleRepository) UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sales SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		logger.Error("UpdateSaleStatus: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

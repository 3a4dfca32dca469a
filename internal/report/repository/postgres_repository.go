package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/report/domain"
)

// ReportRepository berisi query agregasi read-only untuk dashboard dan report.
// Semua penjumlahan/pengelompokan didelegasikan ke engine database.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
	CountProductsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	CountSalesBetween(ctx context.Context, from, to time.Time) (int, error)
	SumPaidPaymentsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	SalesByHourOfDay(ctx context.Context, from, to time.Time) ([]domain.HourlySalesBucket, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]domain.DailySalesBucket, error)
	SalesByMonth(ctx context.Context, from time.Time) ([]domain.MonthlySalesBucket, error)

	CategorySalesSince(ctx context.Context, from time.Time) ([]domain.CategorySales, error)
	TopSellingProductsSince(ctx context.Context, from time.Time, limit int) ([]domain.ProductQuantity, error)
	PaymentTotalsSince(ctx context.Context, from time.Time) (*domain.PaymentTotals, error)
}

type postgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) countRow(ctx context.Context, query string, args ...interface{}) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.Error("countRow: query failed", err)
		return 0, err
	}
	return count, nil
}

func (r *postgresReportRepository) CountProducts(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM products`)
}

func (r *postgresReportRepository) CountLowStockProducts(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM products WHERE stock < min_stock`)
}

func (r *postgresReportRepository) CountProductsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`, from, to)
}

func (r *postgresReportRepository) CountSalesBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM sales WHERE date >= $1 AND date < $2`, from, to)
}

func (r *postgresReportRepository) SumPaidPaymentsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'paid' AND date >= $1 AND date < $2`
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total); err != nil {
		logger.Error("SumPaidPaymentsBetween: query failed", err)
		return decimal.Zero, err
	}
	return total, nil
}

func (r *postgresReportRepository) SalesByHourOfDay(ctx context.Context, from, to time.Time) ([]domain.HourlySalesBucket, error) {
	query := `SELECT EXTRACT(HOUR FROM date)::int AS hour, COUNT(*), COALESCE(SUM(total), 0)
              FROM sales WHERE date >= $1 AND date < $2
              GROUP BY hour ORDER BY hour ASC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		logger.Error("SalesByHourOfDay: query failed", err)
		return nil, err
	}
	defer rows.Close()

	buckets := []domain.HourlySalesBucket{}
	for rows.Next() {
		var b domain.HourlySalesBucket
		if err := rows.Scan(&b.Hour, &b.Sales, &b.Revenue); err != nil {
			logger.Error("SalesByHourOfDay: scan failed", err)
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *postgresReportRepository) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.DailySalesBucket, error) {
	query := `SELECT date_trunc('day', date) AS day, COUNT(*), COALESCE(SUM(total), 0)
              FROM sales WHERE date >= $1 AND date < $2
              GROUP BY day ORDER BY day ASC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		logger.Error("SalesByDay: query failed", err)
		return nil, err
	}
	defer rows.Close()

	buckets := []domain.DailySalesBucket{}
	for rows.Next() {
		var b domain.DailySalesBucket
		if err := rows.Scan(&b.Day, &b.Sales, &b.Revenue); err != nil {
			logger.Error("SalesByDay: scan failed", err)
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *postgresReportRepository) SalesByMonth(ctx context.Context, from time.Time) ([]domain.MonthlySalesBucket, error) {
	query := `SELECT EXTRACT(MONTH FROM date)::int AS month, COUNT(*), COALESCE(SUM(total), 0)
              FROM sales WHERE date >= $1
              GROUP BY month ORDER BY month ASC`
	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		logger.Error("SalesByMonth: query failed", err)
		return nil, err
	}
	defer rows.Close()

	buckets := []domain.MonthlySalesBucket{}
	for rows.Next() {
		var b domain.MonthlySalesBucket
		if err := rows.Scan(&b.Month, &b.Sales, &b.Revenue); err != nil {
			logger.Error("SalesByMonth: scan failed", err)
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *postgresReportRepository) CategorySalesSince(ctx context.Context, from time.Time) ([]domain.CategorySales, error) {
	// Join snapshot item ke produk untuk ambil kategorinya; item yang
	// produknya sudah dihapus tidak ikut terhitung.
	query := `SELECT p.category, SUM(si.quantity)::int AS total_quantity
              FROM sale_items si
              JOIN sales s ON si.sale_id = s.id
              JOIN products p ON si.product_id = p.id
              WHERE s.date >= $1
              GROUP BY p.category
              ORDER BY total_quantity DESC`
	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		logger.Error("CategorySalesSince: query failed", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.CategorySales{}
	for rows.Next() {
		var c domain.CategorySales
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			logger.Error("CategorySalesSince: scan failed", err)
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresReportRepository) TopSellingProductsSince(ctx context.Context, from time.Time, limit int) ([]domain.ProductQuantity, error) {
	query := `SELECT MIN(si.product_name), SUM(si.quantity)::int AS total_quantity
              FROM sale_items si
              JOIN sales s ON si.sale_id = s.id
              WHERE s.date >= $1
              GROUP BY si.product_id
              ORDER BY total_quantity DESC
              LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, from, limit)
	if err != nil {
		logger.Error("TopSellingProductsSince: query failed", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.ProductQuantity{}
	for rows.Next() {
		var pq domain.ProductQuantity
		if err := rows.Scan(&pq.Name, &pq.Quantity); err != nil {
			logger.Error("TopSellingProductsSince: scan failed", err)
			return nil, err
		}
		result = append(result, pq)
	}
	return result, rows.Err()
}

func (r *postgresReportRepository) PaymentTotalsSince(ctx context.Context, from time.Time) (*domain.PaymentTotals, error) {
	query := `SELECT status, COALESCE(SUM(amount), 0) FROM payments WHERE date >= $1 GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		logger.Error("PaymentTotalsSince: query failed", err)
		return nil, err
	}
	defer rows.Close()

	totals := &domain.PaymentTotals{
		Paid:    decimal.Zero,
		Failed:  decimal.Zero,
		Pending: decimal.Zero,
	}
	for rows.Next() {
		var status string
		var amount decimal.Decimal
		if err := rows.Scan(&status, &amount); err != nil {
			logger.Error("PaymentTotalsSince: scan failed", err)
			return nil, err
		}
		switch status {
		case "paid":
			totals.Paid = amount
		case "failed":
			totals.Failed = amount
		case "pending":
			totals.Pending = amount
		}
	}
	return totals, rows.Err()
}

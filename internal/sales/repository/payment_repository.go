package repository

import (
	"context"
	"database/sql"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	UpdateStatusBySaleID(ctx context.Context, saleID string, status domain.SaleStatus) error
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	query := `INSERT INTO payments (sale_id, amount, method, status, customer_name, reference)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, date`

	var reference sql.NullString
	if payment.Reference != nil {
		reference = sql.NullString{String: *payment.Reference, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		payment.SaleID, payment.Amount, payment.Method, payment.Status, payment.CustomerName, reference,
	).Scan(&payment.ID, &payment.Date)
	if err != nil {
		logger.Error("CreatePayment: failed to insert payment", err)
		return err
	}
	return nil
}

func (r *postgresPaymentRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT id, sale_id, amount, method, status, date, customer_name, reference
              FROM payments ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListPayments: query failed", err)
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		var reference sql.NullString
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &p.Method, &p.Status, &p.Date, &p.CustomerName, &reference); err != nil {
			logger.Error("ListPayments: scan failed", err)
			return nil, err
		}
		if reference.Valid {
			p.Reference = &reference.String
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdateStatusBySaleID menyetel status semua payment milik satu sale;
// propagasi satu arah dari sale ke payment.
func (r *postgresPaymentRepository) UpdateStatusBySaleID(ctx context.Context, saleID string, status domain.SaleStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE payments SET status = $1 WHERE sale_id = $2`, status, saleID)
	if err != nil {
		logger.Error("UpdateStatusBySaleID: exec failed", err)
		return err
	}
	return nil
}

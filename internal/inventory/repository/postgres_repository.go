package repository

import (
	"context"
	"database/sql"

	"github.com/ridloal/retail-pos-backend/internal/inventory/domain"
	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
)

type AlertRepository interface {
	ListAlerts(ctx context.Context) ([]domain.InventoryAlert, error)
	CreateAlert(ctx context.Context, alert *domain.InventoryAlert) error
	DeleteAlertsForProduct(ctx context.Context, productID string) error
}

type postgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) AlertRepository {
	return &postgresAlertRepository{db: db}
}

func (r *postgresAlertRepository) ListAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	query := `SELECT id, product_id, product_name, current_stock, min_required_stock, status, created_at
              FROM inventory_alerts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListAlerts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	alerts := []domain.InventoryAlert{}
	for rows.Next() {
		var a domain.InventoryAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.CurrentStock, &a.MinRequiredStock, &a.Status, &a.CreatedAt); err != nil {
			logger.Error("ListAlerts: scan failed", err)
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *postgresAlertRepository) CreateAlert(ctx context.Context, alert *domain.InventoryAlert) error {
	query := `INSERT INTO inventory_alerts (product_id, product_name, current_stock, min_required_stock, status)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		alert.ProductID, alert.ProductName, alert.CurrentStock, alert.MinRequiredStock, alert.Status,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		logger.Error("CreateAlert: failed to insert alert", err)
		return err
	}
	return nil
}

func (r *postgresAlertRepository) DeleteAlertsForProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory_alerts WHERE product_id = $1`, productID)
	if err != nil {
		logger.Error("DeleteAlertsForProduct: exec failed", err)
		return err
	}
	return nil
}

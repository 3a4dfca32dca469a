package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/retail-pos-backend/internal/inventory/domain"
)

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) ListAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	args := m.Called(ctx)
	if alerts := args.Get(0); alerts != nil {
		return alerts.([]domain.InventoryAlert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAlertRepository) CreateAlert(ctx context.Context, alert *domain.InventoryAlert) error {
	args := m.Called(ctx, alert)
	if alert != nil && args.Error(0) == nil {
		alert.ID = "mock-alert-id"
	}
	return args.Error(0)
}

func (m *MockAlertRepository) DeleteAlertsForProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

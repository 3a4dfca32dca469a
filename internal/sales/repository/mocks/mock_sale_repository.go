package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
)

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSaleWithItems(ctx context.Context, sale *domain.Sale, items []domain.SaleItem) error {
	args := m.Called(ctx, sale, items)
	if sale != nil && args.Error(0) == nil {
		sale.ID = "mock-sale-id"
	}
	return args.Error(0)
}

func (m *MockSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if sales := args.Get(0); sales != nil {
		return sales.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) GetSaleByID(ctx context.Context, id string) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSaleRepository) ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	args := m.Called(ctx, limit)
	if sales := args.Get(0); sales != nil {
		return sales.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	if payment != nil && args.Error(0) == nil {
		payment.ID = "mock-payment-id"
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if payments := args.Get(0); payments != nil {
		return payments.([]domain.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatusBySaleID(ctx context.Context, saleID string, status domain.SaleStatus) error {
	args := m.Called(ctx, saleID, status)
	return args.Error(0)
}

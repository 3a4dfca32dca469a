package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ridloal/retail-pos-backend/internal/report/domain"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CountLowStockProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CountProductsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CountSalesBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) SumPaidPaymentsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	if sum := args.Get(0); sum != nil {
		return sum.(decimal.Decimal), args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

func (m *MockReportRepository) SalesByHourOfDay(ctx context.Context, from, to time.Time) ([]domain.HourlySalesBucket, error) {
	args := m.Called(ctx, from, to)
	if buckets := args.Get(0); buckets != nil {
		return buckets.([]domain.HourlySalesBucket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.DailySalesBucket, error) {
	args := m.Called(ctx, from, to)
	if buckets := args.Get(0); buckets != nil {
		return buckets.([]domain.DailySalesBucket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) SalesByMonth(ctx context.Context, from time.Time) ([]domain.MonthlySalesBucket, error) {
	args := m.Called(ctx, from)
	if buckets := args.Get(0); buckets != nil {
		return buckets.([]domain.MonthlySalesBucket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) CategorySalesSince(ctx context.Context, from time.Time) ([]domain.CategorySales, error) {
	args := m.Called(ctx, from)
	if rows := args.Get(0); rows != nil {
		return rows.([]domain.CategorySales), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) TopSellingProductsSince(ctx context.Context, from time.Time, limit int) ([]domain.ProductQuantity, error) {
	args := m.Called(ctx, from, limit)
	if rows := args.Get(0); rows != nil {
		return rows.([]domain.ProductQuantity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) PaymentTotalsSince(ctx context.Context, from time.Time) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, from)
	if totals := args.Get(0); totals != nil {
		return totals.(*domain.PaymentTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

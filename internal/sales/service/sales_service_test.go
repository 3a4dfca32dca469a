package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
	"github.com/ridloal/retail-pos-backend/internal/sales/repository"
	"github.com/ridloal/retail-pos-backend/internal/sales/repository/mocks"
)

func newTestService() (SalesService, *mocks.MockSaleRepository, *mocks.MockPaymentRepository) {
	mockSaleRepo := new(mocks.MockSaleRepository)
	mockPaymentRepo := new(mocks.MockPaymentRepository)
	return NewSalesService(mockSaleRepo, mockPaymentRepo), mockSaleRepo, mockPaymentRepo
}

func TestSalesService_CreateSale(t *testing.T) {
	ctx := context.TODO()

	baseReq := domain.CreateSaleRequest{
		CustomerName: "Budi",
		Subtotal:     decimal.NewFromInt(90000),
		Tax:          decimal.NewFromInt(9000),
		Total:        decimal.NewFromInt(99000),
		Items: []domain.CreateSaleItemRequest{
			{ProductID: "p1", ProductName: "Kopi", Quantity: 2, Price: decimal.NewFromInt(45000)},
		},
	}

	t.Run("Successful creation snapshots items and defaults status", func(t *testing.T) {
		service, mockSaleRepo, _ := newTestService()

		mockSaleRepo.On("CreateSaleWithItems", ctx,
			mock.MatchedBy(func(s *domain.Sale) bool {
				return s.CustomerName == "Budi" && s.Status == domain.StatusPending
			}),
			mock.MatchedBy(func(items []domain.SaleItem) bool {
				return len(items) == 1 && items[0].ProductName == "Kopi" && items[0].Quantity == 2
			}),
		).Return(nil).Once()

		sale, err := service.CreateSale(ctx, baseReq)
		assert.NoError(t, err)
		assert.Equal(t, "mock-sale-id", sale.ID)
		assert.Equal(t, domain.StatusPending, sale.Status)
		mockSaleRepo.AssertExpectations(t)
	})

	t.Run("Explicit status is kept", func(t *testing.T) {
		service, mockSaleRepo, _ := newTestService()

		req := baseReq
		req.Status = domain.StatusPaid
		mockSaleRepo.On("CreateSaleWithItems", ctx, mock.MatchedBy(func(s *domain.Sale) bool {
			return s.Status == domain.StatusPaid
		}), mock.Anything).Return(nil).Once()

		sale, err := service.CreateSale(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, sale.Status)
	})

	t.Run("Insufficient stock is passed through untouched", func(t *testing.T) {
		service, mockSaleRepo, _ := newTestService()

		mockSaleRepo.On("CreateSaleWithItems", ctx, mock.Anything, mock.Anything).
			Return(repository.ErrInsufficientStock).Once()

		sale, err := service.CreateSale(ctx, baseReq)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	})

	t.Run("Empty items are rejected before touching the repo", func(t *testing.T) {
		service, mockSaleRepo, _ := newTestService()

		req := baseReq
		req.Items = nil

		sale, err := service.CreateSale(ctx, req)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrSaleCreationFailed)
		mockSaleRepo.AssertNotCalled(t, "CreateSaleWithItems")
	})

	t.Run("Other repo errors are wrapped", func(t *testing.T) {
		service, mockSaleRepo, _ := newTestService()

		mockSaleRepo.On("CreateSaleWithItems", ctx, mock.Anything, mock.Anything).
			Return(assert.AnError).Once()

		sale, err := service.CreateSale(ctx, baseReq)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrSaleCreationFailed)
	})
}

func TestSalesService_UpdateSaleStatus(t *testing.T) {
	ctx := context.TODO()
	saleID := "sale-1"

	t.Run("Status is propagated to all payments of the sale", func(t *testing.T) {
		service, mockSaleRepo, mockPaymentRepo := newTestService()

		updated := &domain.Sale{ID: saleID, Status: domain.StatusPaid}
		mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.StatusPaid).Return(nil).Once()
		mockPaymentRepo.On("UpdateStatusBySaleID", ctx, saleID, domain.StatusPaid).Return(nil).Once()
		mockSaleRepo.On("GetSaleByID", ctx, saleID).Return(updated, nil).Once()

		sale, err := service.UpdateSaleStatus(ctx, saleID, domain.StatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, sale.Status)
		mockSaleRepo.AssertExpectations(t)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("Unknown sale returns not found", func(t *testing.T) {
		service, mockSaleRepo, mockPaymentRepo := newTestService()

		mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.StatusFailed).
			Return(repository.ErrSaleNotFound).Once()

		sale, err := service.UpdateSaleStatus(ctx, saleID, domain.StatusFailed)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, repository.ErrSaleNotFound)
		mockPaymentRepo.AssertNotCalled(t, "UpdateStatusBySaleID")
	})
}

func TestSalesService_CreatePayment(t *testing.T) {
	ctx := context.TODO()
	saleID := "sale-9"

	req := domain.CreatePaymentRequest{
		SaleID:       saleID,
		Amount:       decimal.NewFromInt(99000),
		Method:       "cash",
		Status:       domain.StatusPaid,
		CustomerName: "Budi",
	}

	t.Run("Payment drives sale status", func(t *testing.T) {
		service, mockSaleRepo, mockPaymentRepo := newTestService()

		mockPaymentRepo.On("CreatePayment", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.SaleID == saleID && p.Status == domain.StatusPaid
		})).Return(nil).Once()
		mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.StatusPaid).Return(nil).Once()
		mockPaymentRepo.On("UpdateStatusBySaleID", ctx, saleID, domain.StatusPaid).Return(nil).Once()
		mockSaleRepo.On("GetSaleByID", ctx, saleID).
			Return(&domain.Sale{ID: saleID, Status: domain.StatusPaid}, nil).Once()

		payment, err := service.CreatePayment(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "mock-payment-id", payment.ID)
		mockSaleRepo.AssertExpectations(t)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("Propagation failure surfaces as error", func(t *testing.T) {
		service, mockSaleRepo, mockPaymentRepo := newTestService()

		mockPaymentRepo.On("CreatePayment", ctx, mock.Anything).Return(nil).Once()
		mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.StatusPaid).
			Return(repository.ErrSaleNotFound).Once()

		payment, err := service.CreatePayment(ctx, req)
		assert.Nil(t, payment)
		assert.ErrorIs(t, err, repository.ErrSaleNotFound)
	})
}

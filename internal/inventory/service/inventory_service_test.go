package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ridloal/retail-pos-backend/internal/inventory/domain"
	"github.com/ridloal/retail-pos-backend/internal/inventory/repository/mocks"
	productdomain "github.com/ridloal/retail-pos-backend/internal/product/domain"
	productmocks "github.com/ridloal/retail-pos-backend/internal/product/repository/mocks"
)

// Interval 0 supaya scheduler tidak jalan saat unit test.
func newTestService() (InventoryService, *mocks.MockAlertRepository, *productmocks.MockProductRepository) {
	mockAlertRepo := new(mocks.MockAlertRepository)
	mockProductRepo := new(productmocks.MockProductRepository)
	return NewInventoryService(mockAlertRepo, mockProductRepo, 0), mockAlertRepo, mockProductRepo
}

func TestEvaluateAlert(t *testing.T) {
	testCases := []struct {
		name     string
		stock    int
		minStock int
		status   domain.AlertStatus
		needed   bool
	}{
		{"Stock at minimum needs no alert", 5, 5, "", false},
		{"Stock above minimum needs no alert", 10, 5, "", false},
		{"Just below minimum is warning", 4, 5, domain.StatusWarning, true},
		{"Exactly half of minimum is critical", 3, 6, domain.StatusCritical, true},
		{"Below half of minimum is critical", 2, 5, domain.StatusCritical, true},
		{"Odd threshold rounds toward critical", 2, 4, domain.StatusCritical, true},
		{"Zero stock with positive minimum is critical", 0, 1, domain.StatusCritical, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, needed := domain.EvaluateAlert(tc.stock, tc.minStock)
			assert.Equal(t, tc.needed, needed)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestInventoryService_RestockProduct(t *testing.T) {
	ctx := context.TODO()
	productID := "prod-restock"

	t.Run("Adds twice the minimum stock and clears alerts", func(t *testing.T) {
		service, mockAlertRepo, mockProductRepo := newTestService()

		product := &productdomain.Product{ID: productID, Name: "Kopi", Stock: 1, MinStock: 5}
		restocked := &productdomain.Product{ID: productID, Name: "Kopi", Stock: 11, MinStock: 5}

		mockProductRepo.On("GetProductByID", ctx, productID).Return(product, nil).Once()
		mockProductRepo.On("IncrementStock", ctx, productID, 10).Return(restocked, nil).Once()
		mockAlertRepo.On("DeleteAlertsForProduct", ctx, productID).Return(nil).Once()

		updated, err := service.RestockProduct(ctx, productID)
		assert.NoError(t, err)
		assert.Equal(t, 11, updated.Stock)
		mockProductRepo.AssertExpectations(t)
		mockAlertRepo.AssertExpectations(t)
	})

	t.Run("Unknown product propagates repo error", func(t *testing.T) {
		service, mockAlertRepo, mockProductRepo := newTestService()

		mockProductRepo.On("GetProductByID", ctx, productID).
			Return(nil, assert.AnError).Once()

		updated, err := service.RestockProduct(ctx, productID)
		assert.Nil(t, updated)
		assert.Error(t, err)
		mockProductRepo.AssertNotCalled(t, "IncrementStock")
		mockAlertRepo.AssertNotCalled(t, "DeleteAlertsForProduct")
	})
}

func TestInventoryService_EvaluateNewProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("Healthy stock creates no alert", func(t *testing.T) {
		service, mockAlertRepo, _ := newTestService()

		err := service.EvaluateNewProduct(ctx, &productdomain.Product{ID: "p1", Stock: 10, MinStock: 5})
		assert.NoError(t, err)
		mockAlertRepo.AssertNotCalled(t, "CreateAlert")
	})

	t.Run("Low stock creates critical alert", func(t *testing.T) {
		service, mockAlertRepo, _ := newTestService()

		mockAlertRepo.On("CreateAlert", ctx, mock.MatchedBy(func(a *domain.InventoryAlert) bool {
			return a.ProductID == "p1" && a.Status == domain.StatusCritical &&
				a.CurrentStock == 2 && a.MinRequiredStock == 5
		})).Return(nil).Once()

		err := service.EvaluateNewProduct(ctx, &productdomain.Product{ID: "p1", Name: "Kopi", Stock: 2, MinStock: 5})
		assert.NoError(t, err)
		mockAlertRepo.AssertExpectations(t)
	})
}

func TestInventoryService_SyncProductAlerts(t *testing.T) {
	ctx := context.TODO()
	service, mockAlertRepo, _ := newTestService()

	product := &productdomain.Product{ID: "p1", Name: "Kopi", Stock: 4, MinStock: 5}

	mockAlertRepo.On("DeleteAlertsForProduct", ctx, "p1").Return(nil).Once()
	mockAlertRepo.On("CreateAlert", ctx, mock.MatchedBy(func(a *domain.InventoryAlert) bool {
		return a.Status == domain.StatusWarning
	})).Return(nil).Once()

	err := service.SyncProductAlerts(ctx, product)
	assert.NoError(t, err)
	mockAlertRepo.AssertExpectations(t)
}

func TestInventoryService_ReconcileAlerts(t *testing.T) {
	ctx := context.TODO()

	t.Run("Stale alert for recovered product is removed", func(t *testing.T) {
		service, mockAlertRepo, mockProductRepo := newTestService()

		products := []productdomain.Product{
			{ID: "p1", Name: "Kopi", Stock: 10, MinStock: 5}, // sehat, alert basi
			{ID: "p2", Name: "Teh", Stock: 4, MinStock: 5},   // warning, alert sudah benar
		}
		alerts := []domain.InventoryAlert{
			{ID: "a1", ProductID: "p1", Status: domain.StatusCritical, CurrentStock: 1, MinRequiredStock: 5},
			{ID: "a2", ProductID: "p2", Status: domain.StatusWarning, CurrentStock: 4, MinRequiredStock: 5},
		}

		mockProductRepo.On("ListProducts", ctx).Return(products, nil).Once()
		mockAlertRepo.On("ListAlerts", ctx).Return(alerts, nil).Once()
		// p1 disinkronkan ulang: hapus alert lama, stok sehat jadi tidak ada alert baru.
		mockAlertRepo.On("DeleteAlertsForProduct", ctx, "p1").Return(nil).Once()

		service.ReconcileAlerts(ctx)
		mockProductRepo.AssertExpectations(t)
		mockAlertRepo.AssertExpectations(t)
		mockAlertRepo.AssertNotCalled(t, "DeleteAlertsForProduct", ctx, "p2")
	})

	t.Run("Missing alert for low product is created", func(t *testing.T) {
		service, mockAlertRepo, mockProductRepo := newTestService()

		products := []productdomain.Product{
			{ID: "p3", Name: "Gula", Stock: 1, MinStock: 5},
		}

		mockProductRepo.On("ListProducts", ctx).Return(products, nil).Once()
		mockAlertRepo.On("ListAlerts", ctx).Return([]domain.InventoryAlert{}, nil).Once()
		mockAlertRepo.On("DeleteAlertsForProduct", ctx, "p3").Return(nil).Once()
		mockAlertRepo.On("CreateAlert", ctx, mock.MatchedBy(func(a *domain.InventoryAlert) bool {
			return a.ProductID == "p3" && a.Status == domain.StatusCritical
		})).Return(nil).Once()

		service.ReconcileAlerts(ctx)
		mockAlertRepo.AssertExpectations(t)
	})
}

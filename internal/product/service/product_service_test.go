package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	invdomain "github.com/ridloal/retail-pos-backend/internal/inventory/domain"
	"github.com/ridloal/retail-pos-backend/internal/product/domain"
	"github.com/ridloal/retail-pos-backend/internal/product/repository/mocks"
)

// Mock untuk dependensi level service (bukan repository).

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListAlerts(ctx context.Context) ([]invdomain.InventoryAlert, error) {
	args := m.Called(ctx)
	if alerts := args.Get(0); alerts != nil {
		return alerts.([]invdomain.InventoryAlert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) RestockProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) EvaluateNewProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInventoryService) SyncProductAlerts(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInventoryService) ReconcileAlerts(ctx context.Context) {
	m.Called(ctx)
}

type MockBarcodeGenerator struct {
	mock.Mock
}

func (m *MockBarcodeGenerator) GenerateValue() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockBarcodeGenerator) Render(value string) (string, error) {
	args := m.Called(value)
	return args.String(0), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.TODO()

	newService := func() (ProductService, *mocks.MockProductRepository, *MockInventoryService, *MockBarcodeGenerator) {
		mockRepo := new(mocks.MockProductRepository)
		mockInventory := new(MockInventoryService)
		mockBarcodes := new(MockBarcodeGenerator)
		return NewProductService(mockRepo, mockInventory, mockBarcodes), mockRepo, mockInventory, mockBarcodes
	}

	baseReq := domain.CreateProductRequest{
		Name:     "Kopi Gayo 250g",
		Category: "Beverages",
		Price:    decimal.NewFromInt(45000),
		Cost:     decimal.NewFromInt(30000),
		Stock:    intPtr(20),
		MinStock: intPtr(5),
	}

	t.Run("Successful creation with barcode", func(t *testing.T) {
		service, mockRepo, mockInventory, mockBarcodes := newService()

		mockBarcodes.On("GenerateValue").Return("A1B2C3D4", nil).Once()
		mockBarcodes.On("Render", "A1B2C3D4").Return("/barcodes/A1B2C3D4.png", nil).Once()
		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == baseReq.Name && p.Stock == 20 && p.MinStock == 5 &&
				p.Barcode != nil && *p.Barcode == "A1B2C3D4"
		})).Return(nil).Once()
		mockInventory.On("EvaluateNewProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := service.CreateProduct(ctx, baseReq)
		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "mock-product-id", product.ID)
		assert.Equal(t, "/barcodes/A1B2C3D4.png", *product.BarcodeImage)
		mockRepo.AssertExpectations(t)
		mockInventory.AssertExpectations(t)
		mockBarcodes.AssertExpectations(t)
	})

	t.Run("Defaults minStock when omitted", func(t *testing.T) {
		service, mockRepo, mockInventory, mockBarcodes := newService()

		req := baseReq
		req.Stock = nil
		req.MinStock = nil

		mockBarcodes.On("GenerateValue").Return("DEADBEEF", nil).Once()
		mockBarcodes.On("Render", "DEADBEEF").Return("/barcodes/DEADBEEF.png", nil).Once()
		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Stock == 0 && p.MinStock == 5
		})).Return(nil).Once()
		mockInventory.On("EvaluateNewProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := service.CreateProduct(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, 5, product.MinStock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects non-positive price and cost, collects both messages", func(t *testing.T) {
		service, mockRepo, _, mockBarcodes := newService()

		req := baseReq
		req.Price = decimal.Zero
		req.Cost = decimal.NewFromInt(-1)

		product, err := service.CreateProduct(ctx, req)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "Price must be a positive number")
		assert.Contains(t, err.Error(), "Cost must be a positive number")
		mockRepo.AssertNotCalled(t, "CreateProduct")
		mockBarcodes.AssertNotCalled(t, "GenerateValue")
	})

	t.Run("Repo error is returned", func(t *testing.T) {
		service, mockRepo, mockInventory, mockBarcodes := newService()

		mockBarcodes.On("GenerateValue").Return("CAFEBABE", nil).Once()
		mockBarcodes.On("Render", "CAFEBABE").Return("/barcodes/CAFEBABE.png", nil).Once()
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*domain.Product")).
			Return(errors.New("db down")).Once()

		product, err := service.CreateProduct(ctx, baseReq)
		assert.Nil(t, product)
		assert.Error(t, err)
		mockInventory.AssertNotCalled(t, "EvaluateNewProduct")
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.TODO()
	productID := "prod-1"

	t.Run("Stock update triggers alert recompute", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockInventory := new(MockInventoryService)
		service := NewProductService(mockRepo, mockInventory, new(MockBarcodeGenerator))

		req := domain.UpdateProductRequest{Stock: intPtr(2)}
		updated := &domain.Product{ID: productID, Name: "Kopi", Stock: 2, MinStock: 5}

		mockRepo.On("UpdateProduct", ctx, productID, req).Return(updated, nil).Once()
		mockInventory.On("SyncProductAlerts", ctx, updated).Return(nil).Once()

		product, err := service.UpdateProduct(ctx, productID, req)
		assert.NoError(t, err)
		assert.Equal(t, 2, product.Stock)
		mockRepo.AssertExpectations(t)
		mockInventory.AssertExpectations(t)
	})

	t.Run("Name-only update skips alert recompute", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockInventory := new(MockInventoryService)
		service := NewProductService(mockRepo, mockInventory, new(MockBarcodeGenerator))

		name := "Kopi Gayo Premium"
		req := domain.UpdateProductRequest{Name: &name}
		updated := &domain.Product{ID: productID, Name: name, Stock: 20, MinStock: 5}

		mockRepo.On("UpdateProduct", ctx, productID, req).Return(updated, nil).Once()

		_, err := service.UpdateProduct(ctx, productID, req)
		assert.NoError(t, err)
		mockInventory.AssertNotCalled(t, "SyncProductAlerts")
	})

	t.Run("Invalid price on update is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		service := NewProductService(mockRepo, new(MockInventoryService), new(MockBarcodeGenerator))

		badPrice := decimal.Zero
		req := domain.UpdateProductRequest{Price: &badPrice}

		product, err := service.UpdateProduct(ctx, productID, req)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, ErrValidation)
		mockRepo.AssertNotCalled(t, "UpdateProduct")
	})
}

func TestProductService_TopProducts(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockProductRepository)
	service := NewProductService(mockRepo, new(MockInventoryService), new(MockBarcodeGenerator))

	image := "/uploads/kopi.png"
	products := []domain.Product{
		{ID: "p1", Name: "Kopi", ImageURL: &image, Price: decimal.NewFromInt(45000)},
		{ID: "p2", Name: "Teh", Price: decimal.NewFromInt(20000)},
	}
	mockRepo.On("ListTopProductsByStock", ctx, 4).Return(products, nil).Once()

	top, err := service.TopProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, 90, top[0].Percentage)
	assert.Equal(t, 80, top[1].Percentage)
	assert.Equal(t, image, top[0].Image)
	assert.Equal(t, "", top[1].Image)
	mockRepo.AssertExpectations(t)
}

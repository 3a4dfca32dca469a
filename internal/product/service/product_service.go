package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	invservice "github.com/ridloal/retail-pos-backend/internal/inventory/service"
	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/product/domain"
	"github.com/ridloal/retail-pos-backend/internal/product/repository"
)

var ErrValidation = errors.New("validation failed")

const (
	defaultMinStock  = 5
	topProductsLimit = 4
)

// BarcodeGenerator membuat nilai barcode baru dan merender PNG-nya.
type BarcodeGenerator interface {
	GenerateValue() (string, error)
	Render(value string) (string, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AttachModel3DFile(ctx context.Context, id, filePath string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	TopProducts(ctx context.Context) ([]domain.TopProduct, error)
}

type productServiceImpl struct {
	repo      repository.ProductRepository
	inventory invservice.InventoryService
	barcodes  BarcodeGenerator
}

func NewProductService(repo repository.ProductRepository, inventory invservice.InventoryService, barcodes BarcodeGenerator) ProductService {
	return &productServiceImpl{
		repo:      repo,
		inventory: inventory,
		barcodes:  barcodes,
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productServiceImpl) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return s.repo.GetProductByBarcode(ctx, barcode)
}

// validateAmounts mengumpulkan SEMUA field harga yang gagal, bukan cuma yang pertama.
func validateAmounts(price, cost decimal.Decimal) error {
	failures := []string{}
	if !price.IsPositive() {
		failures = append(failures, "Price must be a positive number")
	}
	if !cost.IsPositive() {
		failures = append(failures, "Cost must be a positive number")
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(failures, "; "))
	}
	return nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if err := validateAmounts(req.Price, req.Cost); err != nil {
		return nil, err
	}

	barcodeValue, err := s.barcodes.GenerateValue()
	if err != nil {
		logger.Error("Svc.CreateProduct: barcode generation failed", err)
		return nil, err
	}
	barcodeImage, err := s.barcodes.Render(barcodeValue)
	if err != nil {
		logger.Error("Svc.CreateProduct: barcode render failed", err)
		return nil, err
	}

	product := &domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Cost:         req.Cost,
		MinStock:     defaultMinStock,
		ImageURL:     req.ImageURL,
		Barcode:      &barcodeValue,
		BarcodeImage: &barcodeImage,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}

	if err := s.inventory.EvaluateNewProduct(ctx, product); err != nil {
		logger.Error("Svc.CreateProduct: alert check failed for product "+product.ID, err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if req.Price != nil || req.Cost != nil {
		price := decimal.NewFromInt(1)
		cost := decimal.NewFromInt(1)
		if req.Price != nil {
			price = *req.Price
		}
		if req.Cost != nil {
			cost = *req.Cost
		}
		if err := validateAmounts(price, cost); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}

	// Update yang menyentuh stock/minStock memicu recompute alert.
	if req.TouchesStock() {
		if err := s.inventory.SyncProductAlerts(ctx, product); err != nil {
			logger.Error("Svc.UpdateProduct: alert recompute failed for product "+id, err)
			return nil, err
		}
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *productServiceImpl) AttachModel3DFile(ctx context.Context, id, filePath string) (*domain.Product, error) {
	return s.repo.SetModel3DFile(ctx, id, filePath)
}

func (s *productServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// TopProducts mengembalikan produk "teratas" (stok paling rendah dianggap
// paling laku). Percentage masih placeholder agar bentuk respons stabil.
// TODO: hitung percentage dari agregasi sale_items periode berjalan.
func (s *productServiceImpl) TopProducts(ctx context.Context) ([]domain.TopProduct, error) {
	products, err := s.repo.ListTopProductsByStock(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}

	top := make([]domain.TopProduct, len(products))
	for i, p := range products {
		image := ""
		if p.ImageURL != nil {
			image = *p.ImageURL
		}
		top[i] = domain.TopProduct{
			ID:         p.ID,
			Name:       p.Name,
			Image:      image,
			Percentage: 90 - 10*i,
			Price:      p.Price,
		}
	}
	return top, nil
}

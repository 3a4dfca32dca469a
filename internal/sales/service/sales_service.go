package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
	"github.com/ridloal/retail-pos-backend/internal/sales/repository"
)

var ErrSaleCreationFailed = errors.New("sale creation failed")

type SalesService interface {
	CreateSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus) (*domain.Sale, error)

	CreatePayment(ctx context.Context, req domain.CreatePaymentRequest) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

type salesServiceImpl struct {
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
}

func NewSalesService(saleRepo repository.SaleRepository, paymentRepo repository.PaymentRepository) SalesService {
	return &salesServiceImpl{
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateSale menyimpan sale beserta snapshot item dan memotong stok per item.
// Semuanya satu transaksi: stok kurang pada item mana pun membatalkan seluruh
// sale. Alert stok TIDAK dihitung ulang di sini; sweep rekonsiliasi yang
// membereskan alert basi.
func (s *salesServiceImpl) CreateSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale must contain at least one item", ErrSaleCreationFailed)
	}

	sale := &domain.Sale{
		CustomerName: req.CustomerName,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Total:        req.Total,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if sale.Status == "" {
		sale.Status = domain.StatusPending
	}

	items := make([]domain.SaleItem, len(req.Items))
	for i, itemReq := range req.Items {
		items[i] = domain.SaleItem{
			ProductID:   itemReq.ProductID,
			ProductName: itemReq.ProductName,
			Quantity:    itemReq.Quantity,
			Price:       itemReq.Price,
		}
	}

	if err := s.saleRepo.CreateSaleWithItems(ctx, sale, items); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, err
		}
		logger.Error("Svc.CreateSale: repo error", err)
		return nil, fmt.Errorf("%w: %v", ErrSaleCreationFailed, err)
	}
	return sale, nil
}

func (s *salesServiceImpl) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.saleRepo.ListSales(ctx)
}

func (s *salesServiceImpl) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return s.saleRepo.GetSaleByID(ctx, id)
}

// UpdateSaleStatus men-set status sale lalu mem-propagasi status yang sama ke
// semua payment yang mereferensikan sale tersebut. Tidak ada guard transisi:
// status baru selalu menimpa yang lama.
func (s *salesServiceImpl) UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus) (*domain.Sale, error) {
	if err := s.saleRepo.UpdateSaleStatus(ctx, id, status); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.UpdateStatusBySaleID(ctx, id, status); err != nil {
		logger.Error("Svc.UpdateSaleStatus: payment propagation failed for sale "+id, err)
		return nil, err
	}
	return s.saleRepo.GetSaleByID(ctx, id)
}

// CreatePayment menyimpan payment dan mendorong status sale yang direferensikan
// (beserta payment saudaranya) mengikuti status payment ini.
func (s *salesServiceImpl) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest) (*domain.Payment, error) {
	payment := &domain.Payment{
		SaleID:       req.SaleID,
		Amount:       req.Amount,
		Method:       req.Method,
		Status:       req.Status,
		CustomerName: req.CustomerName,
		Reference:    req.Reference,
	}
	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		logger.Error("Svc.CreatePayment: repo error", err)
		return nil, err
	}

	if _, err := s.UpdateSaleStatus(ctx, req.SaleID, req.Status); err != nil {
		logger.Error("Svc.CreatePayment: sale status propagation failed for sale "+req.SaleID, err)
		return nil, err
	}
	return payment, nil
}

func (s *salesServiceImpl) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.ListPayments(ctx)
}

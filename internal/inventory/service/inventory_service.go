package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/ridloal/retail-pos-backend/internal/inventory/domain"
	"github.com/ridloal/retail-pos-backend/internal/inventory/repository"
	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	productdomain "github.com/ridloal/retail-pos-backend/internal/product/domain"
	productrepo "github.com/ridloal/retail-pos-backend/internal/product/repository"
)

const restockMultiplier = 2

type InventoryService interface {
	ListAlerts(ctx context.Context) ([]domain.InventoryAlert, error)
	RestockProduct(ctx context.Context, productID string) (*productdomain.Product, error)

	// EvaluateNewProduct membuat alert untuk produk yang baru dibuat bila perlu.
	EvaluateNewProduct(ctx context.Context, p *productdomain.Product) error
	// SyncProductAlerts menghapus semua alert produk lalu membuat ulang sesuai aturan.
	SyncProductAlerts(ctx context.Context, p *productdomain.Product) error

	ReconcileAlerts(ctx context.Context)
}

type inventoryServiceImpl struct {
	alertRepo   repository.AlertRepository
	productRepo productrepo.ProductRepository
	scheduler   *cron.Cron
}

// NewInventoryService membangun service alert stok. reconcileIntervalMinutes > 0
// mengaktifkan sweep rekonsiliasi periodik (alert yang basi setelah stok turun
// karena penjualan dibereskan lewat jalur ini, bukan inline di createSale).
func NewInventoryService(alertRepo repository.AlertRepository, productRepo productrepo.ProductRepository, reconcileIntervalMinutes int) InventoryService {
	s := &inventoryServiceImpl{
		alertRepo:   alertRepo,
		productRepo: productRepo,
	}
	if reconcileIntervalMinutes > 0 {
		s.initScheduler(reconcileIntervalMinutes)
	}
	return s
}

func (s *inventoryServiceImpl) initScheduler(intervalMinutes int) {
	s.scheduler = cron.New()
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	s.scheduler.AddFunc(spec, func() {
		logger.Debug("Scheduler: Running alert reconciliation sweep...")
		// Gunakan context.Background() karena ini adalah background job
		s.ReconcileAlerts(context.Background())
	})
	s.scheduler.Start()
	logger.Info("Alert reconciliation scheduler initialized with spec '%s'", spec)
}

func (s *inventoryServiceImpl) ListAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	return s.alertRepo.ListAlerts(ctx)
}

// RestockProduct menambah stok sebesar 2 x minStock dan menghapus semua alert
// produk tersebut. Tidak ada pengecekan ulang threshold setelah restock.
func (s *inventoryServiceImpl) RestockProduct(ctx context.Context, productID string) (*productdomain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	restockAmount := restockMultiplier * product.MinStock
	updated, err := s.productRepo.IncrementStock(ctx, productID, restockAmount)
	if err != nil {
		logger.Error("Svc.RestockProduct: increment failed", err)
		return nil, err
	}

	if err := s.alertRepo.DeleteAlertsForProduct(ctx, productID); err != nil {
		logger.Error("Svc.RestockProduct: failed to delete alerts for product "+productID, err)
		return nil, err
	}
	return updated, nil
}

func (s *inventoryServiceImpl) EvaluateNewProduct(ctx context.Context, p *productdomain.Product) error {
	status, needed := domain.EvaluateAlert(p.Stock, p.MinStock)
	if !needed {
		return nil
	}
	return s.alertRepo.CreateAlert(ctx, &domain.InventoryAlert{
		ProductID:        p.ID,
		ProductName:      p.Name,
		CurrentStock:     p.Stock,
		MinRequiredStock: p.MinStock,
		Status:           status,
	})
}

func (s *inventoryServiceImpl) SyncProductAlerts(ctx context.Context, p *productdomain.Product) error {
	if err := s.alertRepo.DeleteAlertsForProduct(ctx, p.ID); err != nil {
		return err
	}
	return s.EvaluateNewProduct(ctx, p)
}

// ReconcileAlerts menyamakan tabel alert dengan keadaan stok terkini.
// createSale sengaja tidak membuat ulang alert inline, jadi alert bisa basi
// sampai sweep ini jalan.
func (s *inventoryServiceImpl) ReconcileAlerts(ctx context.Context) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		logger.Error("ReconcileAlerts: failed to list products", err)
		return
	}
	alerts, err := s.alertRepo.ListAlerts(ctx)
	if err != nil {
		logger.Error("ReconcileAlerts: failed to list alerts", err)
		return
	}

	alertsByProduct := make(map[string][]domain.InventoryAlert)
	for _, a := range alerts {
		alertsByProduct[a.ProductID] = append(alertsByProduct[a.ProductID], a)
	}

	synced := 0
	for i := range products {
		p := &products[i]
		existing := alertsByProduct[p.ID]
		status, needed := domain.EvaluateAlert(p.Stock, p.MinStock)

		upToDate := false
		if !needed {
			upToDate = len(existing) == 0
		} else {
			upToDate = len(existing) == 1 &&
				existing[0].Status == status &&
				existing[0].CurrentStock == p.Stock &&
				existing[0].MinRequiredStock == p.MinStock
		}
		if upToDate {
			continue
		}

		if err := s.SyncProductAlerts(ctx, p); err != nil {
			logger.Error("ReconcileAlerts: failed to sync alerts for product "+p.ID, err)
			continue
		}
		synced++
	}
	if synced > 0 {
		logger.Info("ReconcileAlerts: resynced alerts for %d products", synced)
	}
}

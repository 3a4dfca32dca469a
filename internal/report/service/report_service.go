package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/report/domain"
	"github.com/ridloal/retail-pos-backend/internal/report/repository"
	salesdomain "github.com/ridloal/retail-pos-backend/internal/sales/domain"
	salesrepo "github.com/ridloal/retail-pos-backend/internal/sales/repository"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe value")

const (
	recentTransactionsLimit = 10
	performanceTopLimit     = 5
)

type ReportService interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	SalesChartData(ctx context.Context, timeframe string) ([]domain.ChartPoint, error)
	SalesReport(ctx context.Context, period string) ([]domain.ReportPoint, error)
	CategorySalesReport(ctx context.Context, period string) ([]domain.CategorySales, error)
	ProductPerformanceReport(ctx context.Context, period string) ([]domain.ProductPerformance, error)
	PaymentStats(ctx context.Context, period string) (*domain.PaymentStats, error)
	RecentTransactions(ctx context.Context) ([]salesdomain.Sale, error)
}

type reportServiceImpl struct {
	repo     repository.ReportRepository
	saleRepo salesrepo.SaleRepository
}

func NewReportService(repo repository.ReportRepository, saleRepo salesrepo.SaleRepository) ReportService {
	return &reportServiceImpl{repo: repo, saleRepo: saleRepo}
}

// formatTrend menghitung (cur-prev)/prev*100 sebagai string "x.xx%".
// prev == 0 menghasilkan "0.00%" (guard pembagian nol, bukan trend betulan).
func formatTrend(current, previous float64) string {
	trend := 0.0
	if previous > 0 {
		trend = (current - previous) / previous * 100
	}
	return fmt.Sprintf("%.2f%%", trend)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek mengembalikan Senin 00:00 dari minggu berjalan.
func startOfWeek(t time.Time) time.Time {
	diff := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	return startOfDay(t).AddDate(0, 0, -diff)
}

// periodStart meniru rentang periode relatif milik report lama:
// today/yesterday/week/month/quarter/year, default 30 hari ke belakang.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return startOfDay(now)
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "quarter":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

func (s *reportServiceImpl) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfPrevMonth := startOfMonth.AddDate(0, -1, 0)
	startOfNextMonth := startOfMonth.AddDate(0, 1, 0)
	today := startOfDay(now)

	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	lowStockItems, err := s.repo.CountLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	monthlyRevenue, err := s.repo.SumPaidPaymentsBetween(ctx, startOfMonth, startOfNextMonth)
	if err != nil {
		return nil, err
	}
	todaySales, err := s.repo.CountSalesBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	prevMonthRevenue, err := s.repo.SumPaidPaymentsBetween(ctx, startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}
	currentMonthSales, err := s.repo.CountSalesBetween(ctx, startOfMonth, startOfNextMonth)
	if err != nil {
		return nil, err
	}
	prevMonthSales, err := s.repo.CountSalesBetween(ctx, startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}
	currentMonthProducts, err := s.repo.CountProductsCreatedBetween(ctx, startOfMonth, startOfNextMonth)
	if err != nil {
		return nil, err
	}
	prevMonthProducts, err := s.repo.CountProductsCreatedBetween(ctx, startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalProducts:  totalProducts,
		MonthlyRevenue: monthlyRevenue,
		TodaySales:     todaySales,
		LowStockItems:  lowStockItems,
		ProductsTrend:  formatTrend(float64(currentMonthProducts), float64(prevMonthProducts)),
		RevenueTrend:   formatTrend(monthlyRevenue.InexactFloat64(), prevMonthRevenue.InexactFloat64()),
		SalesTrend:     formatTrend(float64(currentMonthSales), float64(prevMonthSales)),
	}, nil
}

func (s *reportServiceImpl) SalesChartData(ctx context.Context, timeframe string) ([]domain.ChartPoint, error) {
	now := time.Now()
	switch timeframe {
	case "daily":
		today := startOfDay(now)
		buckets, err := s.repo.SalesByHourOfDay(ctx, today, today.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		points := make([]domain.ChartPoint, len(buckets))
		for i, b := range buckets {
			points[i] = domain.ChartPoint{Name: hourLabel(b.Hour), Sales: b.Sales, Revenue: b.Revenue}
		}
		return points, nil

	case "weekly":
		weekStart := startOfWeek(now)
		buckets, err := s.repo.SalesByDay(ctx, weekStart, weekStart.AddDate(0, 0, 7))
		if err != nil {
			return nil, err
		}
		points := make([]domain.ChartPoint, len(buckets))
		for i, b := range buckets {
			points[i] = domain.ChartPoint{Name: b.Day.Format("Mon 2006-01-02"), Sales: b.Sales, Revenue: b.Revenue}
		}
		return points, nil

	case "monthly":
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		buckets, err := s.repo.SalesByMonth(ctx, yearStart)
		if err != nil {
			return nil, err
		}
		points := make([]domain.ChartPoint, len(buckets))
		for i, b := range buckets {
			points[i] = domain.ChartPoint{Name: time.Month(b.Month).String()[:3], Sales: b.Sales, Revenue: b.Revenue}
		}
		return points, nil

	default:
		return nil, ErrInvalidTimeframe
	}
}

// hourLabel mengubah jam 0-23 menjadi label "12 AM".."11 PM".
func hourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}

func (s *reportServiceImpl) SalesReport(ctx context.Context, period string) ([]domain.ReportPoint, error) {
	now := time.Now()
	buckets, err := s.repo.SalesByDay(ctx, periodStart(period, now), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	points := make([]domain.ReportPoint, len(buckets))
	for i, b := range buckets {
		points[i] = domain.ReportPoint{Name: b.Day.Format("2006-01-02"), Sales: b.Sales, Total: b.Revenue}
	}
	return points, nil
}

func (s *reportServiceImpl) CategorySalesReport(ctx context.Context, period string) ([]domain.CategorySales, error) {
	return s.repo.CategorySalesSince(ctx, periodStart(period, time.Now()))
}

// ProductPerformanceReport mengembalikan 5 produk terlaris. Trend dan
// percentage masih placeholder agar bentuk respons kompatibel.
// TODO: bandingkan dengan periode sebelumnya untuk trend/percentage betulan.
func (s *reportServiceImpl) ProductPerformanceReport(ctx context.Context, period string) ([]domain.ProductPerformance, error) {
	top, err := s.repo.TopSellingProductsSince(ctx, periodStart(period, time.Now()), performanceTopLimit)
	if err != nil {
		return nil, err
	}
	result := make([]domain.ProductPerformance, len(top))
	for i, pq := range top {
		result[i] = domain.ProductPerformance{
			Name:       pq.Name,
			Sales:      pq.Quantity,
			Trend:      "up",
			Percentage: fmt.Sprintf("%d%%", pq.Quantity),
		}
	}
	return result, nil
}

func (s *reportServiceImpl) PaymentStats(ctx context.Context, period string) (*domain.PaymentStats, error) {
	totals, err := s.repo.PaymentTotalsSince(ctx, periodStart(period, time.Now()))
	if err != nil {
		logger.Error("Svc.PaymentStats: repo error", err)
		return nil, err
	}
	return &domain.PaymentStats{
		Total:      decimal.Sum(totals.Paid, totals.Failed, totals.Pending),
		Successful: totals.Paid,
		Failed:     totals.Failed,
		Pending:    totals.Pending,
	}, nil
}

func (s *reportServiceImpl) RecentTransactions(ctx context.Context) ([]salesdomain.Sale, error) {
	return s.saleRepo.ListRecentSales(ctx, recentTransactionsLimit)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts  int             `json:"totalProducts"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	TodaySales     int             `json:"todaySales"`
	LowStockItems  int             `json:"lowStockItems"`
	ProductsTrend  string          `json:"productsTrend"`
	RevenueTrend   string          `json:"revenueTrend"`
	SalesTrend     string          `json:"salesTrend"`
}

// ChartPoint adalah satu bucket pada chart penjualan (per jam/hari/bulan).
type ChartPoint struct {
	Name    string          `json:"name"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ReportPoint struct {
	Name  string          `json:"name"`
	Sales int             `json:"sales"`
	Total decimal.Decimal `json:"total"`
}

type CategorySales struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ProductPerformance struct {
	Name       string `json:"name"`
	Sales      int    `json:"sales"`
	Trend      string `json:"trend"`
	Percentage string `json:"percentage"`
}

type PaymentStats struct {
	Total      decimal.Decimal `json:"total"`
	Successful decimal.Decimal `json:"successful"`
	Failed     decimal.Decimal `json:"failed"`
	Pending    decimal.Decimal `json:"pending"`
}

// Bucket mentah hasil agregasi repository, sebelum diberi label.

type HourlySalesBucket struct {
	Hour    int
	Sales   int
	Revenue decimal.Decimal
}

type DailySalesBucket struct {
	Day     time.Time
	Sales   int
	Revenue decimal.Decimal
}

type MonthlySalesBucket struct {
	Month   int
	Sales   int
	Revenue decimal.Decimal
}

type ProductQuantity struct {
	Name     string
	Quantity int
}

type PaymentTotals struct {
	Paid    decimal.Decimal
	Failed  decimal.Decimal
	Pending decimal.Decimal
}

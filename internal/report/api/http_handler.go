package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/report/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.DashboardStats)
	router.GET("/sales/chart", h.SalesChart)
	router.GET("/transactions/recent", h.RecentTransactions)

	reports := router.Group("/reports")
	{
		reports.GET("/sales", h.SalesReport)
		reports.GET("/category-sales", h.CategorySales)
		reports.GET("/product-performance", h.ProductPerformance)
	}

	router.GET("/payments/stats", h.PaymentStats)
}

func (h *ReportHandler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		logger.Error("Handler.DashboardStats: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) SalesChart(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", "monthly")
	points, err := h.service.SalesChartData(c.Request.Context(), timeframe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeframe value"})
			return
		}
		logger.Error("Handler.SalesChart: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales chart data"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ReportHandler) RecentTransactions(c *gin.Context) {
	sales, err := h.service.RecentTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Handler.RecentTransactions: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent transactions"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *ReportHandler) SalesReport(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	points, err := h.service.SalesReport(c.Request.Context(), period)
	if err != nil {
		logger.Error("Handler.SalesReport: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales report"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ReportHandler) CategorySales(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	rows, err := h.service.CategorySalesReport(c.Request.Context(), period)
	if err != nil {
		logger.Error("Handler.CategorySales: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category sales"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) ProductPerformance(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	rows, err := h.service.ProductPerformanceReport(c.Request.Context(), period)
	if err != nil {
		logger.Error("Handler.ProductPerformance: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product performance"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) PaymentStats(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	stats, err := h.service.PaymentStats(c.Request.Context(), period)
	if err != nil {
		logger.Error("Handler.PaymentStats: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/sales/domain"
	"github.com/ridloal/retail-pos-backend/internal/sales/repository"
	"github.com/ridloal/retail-pos-backend/internal/sales/service"
)

type SalesHandler struct {
	salesService service.SalesService
}

func NewSalesHandler(ss service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: ss}
}

func (h *SalesHandler) RegisterRoutes(router *gin.RouterGroup) {
	saleRoutes := router.Group("/sales")
	{
		saleRoutes.GET("", h.ListSales)
		saleRoutes.GET("/:id", h.GetSale)
		saleRoutes.POST("", h.CreateSale)
		saleRoutes.PATCH("/:id/status", h.UpdateSaleStatus)
	}

	router.GET("/payments", h.ListPayments)
}

// RegisterAuthenticatedRoutes memasang alias endpoint di belakang auth gate.
func (h *SalesHandler) RegisterAuthenticatedRoutes(router *gin.RouterGroup) {
	router.POST("/sales", h.CreateSale)
	router.POST("/payment", h.CreatePayment)
	router.GET("/payment", h.ListPayments)
}

func (h *SalesHandler) ListSales(c *gin.Context) {
	sales, err := h.salesService.ListSales(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListSales: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SalesHandler) GetSale(c *gin.Context) {
	sale, err := h.salesService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
			return
		}
		logger.Error("Hdl.GetSale: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req domain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required sale data."})
		return
	}

	sale, err := h.salesService.CreateSale(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		logger.Error("Hdl.CreateSale: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SalesHandler) UpdateSaleStatus(c *gin.Context) {
	var req domain.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sale, err := h.salesService.UpdateSaleStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
			return
		}
		logger.Error("Hdl.UpdateSaleStatus: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) ListPayments(c *gin.Context) {
	payments, err := h.salesService.ListPayments(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListPayments: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *SalesHandler) CreatePayment(c *gin.Context) {
	var req domain.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	payment, err := h.salesService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
			return
		}
		logger.Error("Hdl.CreatePayment: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment created successfully",
		"payment": payment,
	})
}

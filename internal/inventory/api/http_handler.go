package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/retail-pos-backend/internal/inventory/service"
	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	productrepo "github.com/ridloal/retail-pos-backend/internal/product/repository"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	invRoutes := router.Group("/inventory")
	{
		invRoutes.GET("/alerts", h.ListAlerts)
		invRoutes.POST("/restock/:id", h.Restock)
	}
}

func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.inventoryService.ListAlerts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListAlerts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	id := c.Param("id")
	product, err := h.inventoryService.RestockProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, productrepo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.Restock: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

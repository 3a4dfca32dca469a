package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/product/domain"
	"github.com/ridloal/retail-pos-backend/internal/product/repository"
	"github.com/ridloal/retail-pos-backend/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
	uploadsDir     string
}

func NewProductHandler(ps service.ProductService, uploadsDir string) *ProductHandler {
	return &ProductHandler{productService: ps, uploadsDir: uploadsDir}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	prodRoutes := router.Group("/products")
	{
		prodRoutes.GET("", h.ListProducts)
		prodRoutes.GET("/top", h.TopProducts)
		prodRoutes.GET("/categories", h.ListCategories)
		prodRoutes.GET("/barcode/:barcode", h.GetProductByBarcode)
		prodRoutes.GET("/:id", h.GetProduct)
		prodRoutes.POST("", h.CreateProduct)
		prodRoutes.PATCH("/:id", h.UpdateProduct)
		prodRoutes.PATCH("/:id/upload", h.UploadModel3DFile)
		prodRoutes.DELETE("/:id", h.DeleteProduct)
	}
}

// RegisterAuthenticatedRoutes memasang alias endpoint yang ada di belakang auth gate.
func (h *ProductHandler) RegisterAuthenticatedRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.ListProducts)
	router.GET("/products/categories", h.ListCategories)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProductByBarcode(c *gin.Context) {
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.GetProductByBarcode: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		logger.Error("Hdl.CreateProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.UpdateProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.DeleteProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadModel3DFile menerima file GLB via multipart field "model3dFile".
func (h *ProductHandler) UploadModel3DFile(c *gin.Context) {
	fileHeader, err := c.FormFile("model3dFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "model/gltf-binary" && !strings.HasSuffix(fileHeader.Filename, ".glb") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only GLB files are allowed"})
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		logger.Error("Hdl.UploadModel3DFile: failed to create uploads dir", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	fileName := "model3dFile-" + uuid.NewString() + ext
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadsDir, fileName)); err != nil {
		logger.Error("Hdl.UploadModel3DFile: failed to save file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	product, err := h.productService.AttachModel3DFile(c.Request.Context(), c.Param("id"), "/uploads/"+fileName)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		logger.Error("Hdl.UploadModel3DFile: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListCategories: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) TopProducts(c *gin.Context) {
	top, err := h.productService.TopProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.TopProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, top)
}

package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/retail-pos-backend/internal/barcode"
	inventoryapi "github.com/ridloal/retail-pos-backend/internal/inventory/api"
	inventoryrepo "github.com/ridloal/retail-pos-backend/internal/inventory/repository"
	inventoryservice "github.com/ridloal/retail-pos-backend/internal/inventory/service"
	"github.com/ridloal/retail-pos-backend/internal/platform/config"
	"github.com/ridloal/retail-pos-backend/internal/platform/database"
	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/platform/middleware"
	productapi "github.com/ridloal/retail-pos-backend/internal/product/api"
	productrepo "github.com/ridloal/retail-pos-backend/internal/product/repository"
	productservice "github.com/ridloal/retail-pos-backend/internal/product/service"
	reportapi "github.com/ridloal/retail-pos-backend/internal/report/api"
	reportrepo "github.com/ridloal/retail-pos-backend/internal/report/repository"
	reportservice "github.com/ridloal/retail-pos-backend/internal/report/service"
	salesapi "github.com/ridloal/retail-pos-backend/internal/sales/api"
	salesrepo "github.com/ridloal/retail-pos-backend/internal/sales/repository"
	salesservice "github.com/ridloal/retail-pos-backend/internal/sales/service"
	userapi "github.com/ridloal/retail-pos-backend/internal/user/api"
	userrepo "github.com/ridloal/retail-pos-backend/internal/user/repository"
	userservice "github.com/ridloal/retail-pos-backend/internal/user/service"
)

func main() {
	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("5000")
	authCfg := config.LoadAuthConfig()
	storageCfg := config.LoadStorageConfig()
	inventoryCfg := config.LoadInventoryConfig()

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("FATAL: Failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	productRepo := productrepo.NewPostgresProductRepository(db)
	alertRepo := inventoryrepo.NewPostgresAlertRepository(db)
	saleRepo := salesrepo.NewPostgresSaleRepository(db)
	paymentRepo := salesrepo.NewPostgresPaymentRepository(db)
	userRepo := userrepo.NewPostgresUserRepository(db)
	reportRepo := reportrepo.NewPostgresReportRepository(db)

	// Services
	inventoryService := inventoryservice.NewInventoryService(alertRepo, productRepo, inventoryCfg.ReconcileIntervalMinutes)
	barcodeGen := barcode.NewGenerator(storageCfg.BarcodesDir)
	productService := productservice.NewProductService(productRepo, inventoryService, barcodeGen)
	salesService := salesservice.NewSalesService(saleRepo, paymentRepo)
	userService := userservice.NewUserService(userRepo, authCfg.JWTSecret)
	reportService := reportservice.NewReportService(reportRepo, saleRepo)

	// Handlers
	productHandler := productapi.NewProductHandler(productService, storageCfg.UploadsDir)
	inventoryHandler := inventoryapi.NewInventoryHandler(inventoryService)
	salesHandler := salesapi.NewSalesHandler(salesService)
	userHandler := userapi.NewUserHandler(userService)
	reportHandler := reportapi.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	apiGroup := router.Group("/api")
	{
		productHandler.RegisterRoutes(apiGroup)
		inventoryHandler.RegisterRoutes(apiGroup)
		salesHandler.RegisterRoutes(apiGroup)
		userHandler.RegisterRoutes(apiGroup)
		reportHandler.RegisterRoutes(apiGroup)
	}

	// Alias di bawah /api/user yang butuh token valid.
	authGroup := apiGroup.Group("/user")
	authGroup.Use(userapi.AuthRequired(authCfg.JWTSecret))
	{
		productHandler.RegisterAuthenticatedRoutes(authGroup)
		salesHandler.RegisterAuthenticatedRoutes(authGroup)
	}

	// File statis: barcode PNG dan model 3D hasil upload.
	router.Static("/public", storageCfg.PublicDir)
	router.Static("/uploads", storageCfg.UploadsDir)
	router.Static("/barcodes", storageCfg.BarcodesDir)

	// SPA fallback: path non-API diarahkan ke frontend build.
	indexPath := filepath.Join(storageCfg.FrontendDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		assetPath := filepath.Join(storageCfg.FrontendDir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(assetPath); err == nil && !info.IsDir() {
			c.File(assetPath)
			return
		}
		c.File(indexPath)
	})

	logger.Info("Retail POS server starting on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("FATAL: Failed to run server", err)
		os.Exit(1)
	}
}

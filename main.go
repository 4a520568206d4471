package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tarelfish/tarel-api/config"
	"github.com/tarelfish/tarel-api/controllers"
	"github.com/tarelfish/tarel-api/database"
	"github.com/tarelfish/tarel-api/logger"
	"github.com/tarelfish/tarel-api/middlewares"
	"github.com/tarelfish/tarel-api/repositories"
	"github.com/tarelfish/tarel-api/routes"
	"github.com/tarelfish/tarel-api/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migrate database", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		zlog.Fatal("seed database", zap.Error(err))
	}

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	cutClean := repositories.NewCutCleanOptionRepository(db)
	orders := repositories.NewOrderRepository(db)
	support := repositories.NewSupportRepository(db)
	siteSettings := repositories.NewSiteSettingRepository(db)
	analytics := repositories.NewAnalyticsRepository(db)

	codes := services.NewUserCodeGenerator(users)
	authService := services.NewAuthService(users, codes, cfg.JWTSecret, cfg.TokenTTL)
	catalogService := services.NewCatalogService(categories, products, cutClean)
	orderService := services.NewOrderService(db, orders)
	supportService := services.NewSupportService(support)
	settingsService := services.NewSettingsService(siteSettings)
	analyticsService := services.NewAnalyticsService(analytics, orders, users)
	addressService := services.NewAddressService(cfg.GetAddressBaseURL, cfg.GetAddressAPIKey)
	uploader := services.NewImageUploader(cfg.S3Bucket, cfg.MediaRoot, cfg.MediaURL, zlog)

	requireAuth := middlewares.RequireAuth(authService)
	requireAdmin := middlewares.RequireAdmin()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(logger.RequestLogger(zlog))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.S3Bucket == "" {
		server.Static("/media", cfg.MediaRoot)
	}

	routes.DefaultRoutes(server)

	api := server.Group("/api")
	routes.AuthRoutes(api, controllers.NewAuthController(authService), requireAuth)
	routes.ProductRoutes(api, controllers.NewProductController(catalogService, settingsService))
	routes.OrderRoutes(api, controllers.NewOrderController(orderService), requireAuth)
	routes.SupportRoutes(api, controllers.NewSupportController(supportService), requireAuth)
	routes.AddressRoutes(api, controllers.NewAddressController(addressService))
	routes.AdminRoutes(
		api,
		controllers.NewAdminController(analyticsService, orderService, supportService, settingsService, &cfg),
		controllers.NewAdminCatalogController(catalogService, uploader),
		requireAuth,
		requireAdmin,
	)

	zlog.Info("starting server", zap.String("port", cfg.Port))
	if err := server.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"strings"

	"storefront-service/common/logger"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/kafka"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	dsn := database.DSN(cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone)
	db, err := database.Connect(dsn, logger.Log,
		&models.Product{}, &models.Variant{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.OrderAddress{}, &models.OrderStatusHistory{},
		&models.InventoryLog{}, &models.ShippingRule{}, &models.PaymentTransferMethod{},
	)
	if err != nil {
		logger.Log.Fatal("Database setup failed", zap.Error(err))
	}

	store := repository.NewGormStore(db)

	// Checkout can only ever resolve a fee if an active fallback rule exists.
	if err := services.ValidateShippingConfig(context.Background(), store.ShippingRules()); err != nil {
		logger.Log.Warn("Shipping config incomplete, checkout will fail for unmatched locations", zap.Error(err))
	}

	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer producer.Close()
	}

	var snsClient aws_pkg.SNSPublisher
	if cfg.SNSTopicArn != "" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		} else {
			logger.Log.Warn("AWS config load failed, SNS publishing disabled", zap.Error(err))
		}
	}

	cartService := services.NewCartService(store, logger.Log)
	checkoutService := services.NewCheckoutService(store, producer, snsClient, cfg.SNSTopicArn, logger.Log)
	orderService := services.NewOrderService(store, logger.Log)
	statusService := services.NewOrderStatusService(store, producer, snsClient, cfg.SNSTopicArn, logger.Log)
	inventoryService := services.NewInventoryService(store, logger.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	routes.Register(r,
		controllers.NewCartController(cartService),
		controllers.NewCheckoutController(checkoutService),
		controllers.NewOrderController(orderService),
		controllers.NewAdminOrderController(statusService),
		controllers.NewInventoryController(inventoryService),
	)

	logger.Log.Info("Starting storefront service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server stopped", zap.Error(err))
	}
}

package routes

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handler "courier-billing-backend/internal/handlers"
	"courier-billing-backend/internal/repository"
	billingservice "courier-billing-backend/internal/services/billing"
	ledgerservice "courier-billing-backend/internal/services/ledger"
	"courier-billing-backend/internal/services/notify"
	"courier-billing-backend/internal/services/rating"
	"courier-billing-backend/internal/services/weights"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, ids *snowflake.Node, log *zap.Logger) {
	customerRepo := repository.NewCustomerRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	surchargeRepo := repository.NewSurchargeRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	manifestRepo := repository.NewManifestRepository(db)
	clubbingRepo := repository.NewClubbingRepository(db)
	runRepo := repository.NewRunEntryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	rater := rating.NewService(zoneRepo, surchargeRepo, log)
	aggregator := weights.NewAggregator(clubbingRepo, shipmentRepo)
	notifier := notify.NewNotifier(notificationRepo, log)
	billingSvc := billingservice.NewService(shipmentRepo, invoiceRepo, rater, aggregator, notifier, ids, log)
	ledgerSvc := ledgerservice.NewService(ledgerRepo, customerRepo, invoiceRepo, log)

	customerHandler := handler.NewCustomerHandler(customerRepo, ledgerSvc)
	catalogHandler := handler.NewCatalogHandler(zoneRepo, surchargeRepo, runRepo, rater)
	shipmentHandler := handler.NewShipmentHandler(shipmentRepo, manifestRepo)
	clubbingHandler := handler.NewClubbingHandler(clubbingRepo)
	billingHandler := handler.NewBillingHandler(billingSvc, ledgerSvc, invoiceRepo, notificationRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	customers := api.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:code", customerHandler.Get)
	customers.GET("/:code/ledger", customerHandler.Ledger)
	customers.GET("/:code/balance", customerHandler.Balance)

	zones := api.Group("/zones")
	zones.GET("", catalogHandler.ListZones)
	zones.POST("", catalogHandler.CreateZone)
	zones.GET("/:sector", catalogHandler.ListZonesBySector)

	settings := api.Group("/settings")
	settings.GET("/fuel", catalogHandler.ListFuelSettings)
	settings.POST("/fuel", catalogHandler.CreateFuelSetting)
	settings.GET("/tax", catalogHandler.ListTaxSettings)
	settings.POST("/tax", catalogHandler.CreateTaxSetting)

	shipments := api.Group("/shipments")
	shipments.GET("", shipmentHandler.List)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("/:awb", shipmentHandler.Get)

	manifests := api.Group("/manifests")
	manifests.GET("", shipmentHandler.ListManifests)
	manifests.POST("", shipmentHandler.CreateManifest)
	manifests.POST("/:id/close", shipmentHandler.CloseManifest)

	runs := api.Group("/runs")
	runs.GET("", catalogHandler.ListRuns)
	runs.POST("", catalogHandler.CreateRun)

	clubbing := api.Group("/clubbing")
	clubbing.POST("", clubbingHandler.Create)
	clubbing.GET("/:id", clubbingHandler.Get)
	clubbing.PUT("/:id/weights", clubbingHandler.UpdateWeights)
	clubbing.POST("/:id/lock", clubbingHandler.Lock)

	billing := api.Group("/billing")
	billing.GET("/invoices", billingHandler.ListInvoices)
	billing.POST("/invoices", billingHandler.BuildInvoice)
	billing.GET("/invoices/:number", billingHandler.GetInvoice)
	billing.POST("/invoices/:number/apply", billingHandler.ApplyInvoice)
	billing.POST("/invoices/:number/void", billingHandler.VoidInvoice)
	billing.POST("/receipts", billingHandler.ApplyReceipt)

	notifications := api.Group("/notifications")
	notifications.GET("", billingHandler.ListNotifications)
	notifications.POST("", billingHandler.CreateNotification)
}

package main

import (
	"log"
	"time"

	"courier-billing-backend/internal/config"
	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	logger := config.NewLogger()
	defer logger.Sync()

	db := config.InitDB()

	db.AutoMigrate(
		&models.CustomerAccount{},
		&models.Zone{},
		&models.SurchargeSetting{},
		&models.Shipment{},
		&models.Manifest{},
		&models.ClubbingBatch{},
		&models.ClubbingMember{},
		&models.RunEntry{},
		&models.Invoice{},
		&models.LedgerEntry{},
		&models.Notification{},
	)

	ids := config.NewIDNode()

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, ids, logger)

	r.Run(config.Port())
}

package config

import (
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// InitDB opens the Postgres connection from env vars.
func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_NAME", "courier_billing"),
			getenv("DB_PORT", "5432"),
			getenv("DB_SSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

// NewLogger builds the process-wide zap logger.
func NewLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if getenv("APP_ENV", "development") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

// NewIDNode builds the snowflake node used for invoice numbers.
func NewIDNode() *snowflake.Node {
	nodeID := int64(1)
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("failed to create snowflake node: %v", err)
	}
	return node
}

// Port returns the HTTP listen address.
func Port() string {
	return ":" + getenv("PORT", "8080")
}

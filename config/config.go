package config

import (
	"fmt"
	"log"
	"os"

	"github.com/brijdaniel/RR-backend/models"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var Log *zap.Logger

// Rdb is nil unless REDIS_ADDR is configured; callers must treat the cache
// as optional.
var Rdb *redis.Client

func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	Log = l
}

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		Log.Warn("No .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// TranslateError so unique-index violations surface as
	// gorm.ErrDuplicatedKey; the checklist and network services rely on it.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Checklist{},
		&models.Regret{},
		&models.Network{},
	)
	if err != nil {
		Log.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		Log.Info("REDIS_ADDR not set, regret index cache disabled")
		return
	}
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	Log.Info("Redis cache enabled", zap.String("addr", addr))
}

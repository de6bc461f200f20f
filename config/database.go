package config

import (
	"fmt"
	"log"
	"os"

	"jobboard/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func getDBConfigByEnv(env string) (string, error) {
	var prefix string

	switch env {
	case "dev":
		prefix = "DEV_DB_"
	case "qc":
		prefix = "QC_DB_"
	case "prod":
		prefix = "PROD_DB_"
	default:
		return "", fmt.Errorf("unknown environment: %q", env)
	}

	sslMode := getEnvDefault(prefix+"SSLMODE", "require")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		os.Getenv(prefix+"HOST"),
		os.Getenv(prefix+"USER"),
		os.Getenv(prefix+"PASSWORD"),
		os.Getenv(prefix+"NAME"),
		os.Getenv(prefix+"PORT"),
		sslMode,
	)
	return dsn, nil
}

// ConnectDB mở kết nối postgres. Không tạo foreign key khi migrate: xóa job không được
// kéo theo xóa application.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	log.Println("Successfully connected to db")
	return db, nil
}

// Migrate tạo/cập nhật bảng cho toàn bộ model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.JobView{},
		&models.JobReaction{},
		&models.SavedJob{},
		&models.Notification{},
		&models.Announcement{},
	)
}

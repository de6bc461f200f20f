package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config gom toàn bộ cấu hình đọc từ môi trường.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseDSN string

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	AccessTokenSecret string
	AccessTokenTTL    time.Duration
	GoogleClientID    string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadDir           string
	UploadMaxBytes      int64

	RabbitMQURL       string
	NotificationQueue string

	Location           *time.Location
	ViewRetentionDays  int
	StrictTransitions  bool
	AllowedCORSOrigins []string
}

// IsProd cho biết đang chạy môi trường production
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// CloudinaryEnabled trả về true khi đủ thông tin kết nối Cloudinary
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// LoadEnv nạp biến môi trường từ tệp `.env` nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

// Load đọc .env rồi dựng Config từ biến môi trường
func Load() (*Config, error) {
	LoadEnv()
	return FromEnv()
}

// FromEnv dựng Config chỉ từ biến môi trường hiện tại
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:               getEnvDefault("ENV", "dev"),
		Port:              getEnvDefault("PORT", "8083"),
		LogLevel:          getEnvDefault("LOG_LEVEL", "info"),
		RedisAddr:         getEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisUser:         GetEnv("REDIS_USER"),
		RedisPassword:     GetEnv("REDIS_PASSWORD"),
		AccessTokenSecret: GetEnv("SECRET_KEY_ACCESS_TOKEN"),
		GoogleClientID:    GetEnv("GOOGLE_CLIENT_ID"),

		CloudinaryCloudName: GetEnv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    GetEnv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: GetEnv("CLOUDINARY_API_SECRET"),
		UploadDir:           getEnvDefault("UPLOAD_DIR", "uploads/resumes"),

		RabbitMQURL:       GetEnv("RABBITMQ_URL"),
		NotificationQueue: getEnvDefault("NOTIFICATION_QUEUE", "jobboard.notifications"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	minutes, err := getEnvInt("ACCESS_TOKEN_MINUTES", 60*24)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	maxBytes, err := getEnvInt("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	if cfg.ViewRetentionDays, err = getEnvInt("VIEW_RETENTION_DAYS", 90); err != nil {
		return nil, err
	}

	cfg.StrictTransitions, err = strconv.ParseBool(getEnvDefault("STRICT_APPLICATION_TRANSITIONS", "false"))
	if err != nil {
		return nil, fmt.Errorf("STRICT_APPLICATION_TRANSITIONS: %w", err)
	}

	cfg.Location, err = time.LoadLocation(getEnvDefault("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	if origins := GetEnv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedCORSOrigins = append(cfg.AllowedCORSOrigins, o)
			}
		}
	}

	if dsn := GetEnv("DB_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	} else {
		cfg.DatabaseDSN, err = getDBConfigByEnv(cfg.Env)
		if err != nil {
			return nil, err
		}
	}

	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

package config

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"jobboard/models"
	"jobboard/services/notification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// TokenVerifier xác thực token gửi qua query của websocket
type TokenVerifier interface {
	Parse(token string) (models.Actor, error)
}

func InitApp(ctx context.Context, cfg *Config) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	if len(cfg.AllowedCORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.AllowedCORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := initComponents(ctx, cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New(cron.WithLocation(cfg.Location))

	return router, m, c, nil
}

func initComponents(ctx context.Context, cfg *Config) error {
	var err error

	DB, err = ConnectDB(cfg)
	if err != nil {
		return err
	}
	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate tables: %v", err)
	}

	Cloudinary, err = ConnectCloudinary(cfg)
	if err != nil {
		return err
	}

	RedisClient, err = ConnectRedis(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}

// InitWebSocket mở endpoint /ws?token=..., mỗi session được gắn userID và role để gửi thông báo đúng người.
func InitWebSocket(router *gin.Engine, m *melody.Melody, verifier TokenVerifier) {
	router.GET("/ws", func(c *gin.Context) {
		actor, err := verifier.Parse(c.Query("token"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, notification.SessionKeys(actor)); err != nil {
			log.Printf("websocket error: %v", err)
		}
	})
	log.Println("WebSocket initialized successfully")
}

package config

import (
	"fmt"

	"hotelcore/middleware"
	"hotelcore/services/logger"
	"hotelcore/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp dựng gin engine, melody hub và cron scheduler
func InitApp(c Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if c.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.SessionHeader)
	configCors.AddExposeHeaders(middleware.SessionHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))
	router.Use(middleware.SessionMiddleware())

	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		if err := validator.Register(v); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	m := melody.New()

	cl := logger.CronLogger{L: log}
	cr := cron.New(
		cron.WithLocation(c.Location()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return router, m, cr, nil
}

func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Warn("websocket upgrade failed", "error", err)
		}
	})
	log.Info("WebSocket initialized successfully")
}

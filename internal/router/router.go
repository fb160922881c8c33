package router

import (
	"fmt"
	"strings"

	"github.com/remitrack/internal/cache"
	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/http/handlers"
	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rt"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "demasiados intentos de inicio de sesión",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded evidence photos are served as static files.
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.Login)
		}

		protected := apiV1.Group("")
		protected.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			protected.GET("/me", handler.Me)

			protected.GET("/remisiones", handler.ListRemisiones)
			protected.POST("/remisiones", handler.CreateRemision)
			protected.GET("/remisiones/:id", handler.GetRemision)
			protected.PUT("/remisiones/:id/estado", handler.UpdateRemisionEstado)
			protected.PUT("/remisiones/:id/observaciones", handler.UpdateRemisionObservaciones)

			protected.GET("/remisiones/:id/preembarque-info", handler.GetPreembarqueInfo)
			protected.PUT("/remisiones/:id/preembarque-info", handler.UpsertPreembarqueInfo)

			protected.GET("/remisiones/:id/piezas", handler.ListPiezas)
			protected.POST("/remisiones/:id/piezas", handler.RegisterPieza)
			protected.POST("/remisiones/:id/lotes", handler.RegisterLote)
			protected.PUT("/piezas/:id", handler.UpdatePieza)
			protected.DELETE("/piezas/:id", handler.DeletePieza)

			protected.POST("/scan/parse", handler.ParseScanCode)

			protected.GET("/remisiones/:id/imagenes", handler.ListImages)
			protected.POST("/remisiones/:id/imagenes", handler.UploadImage)
			protected.PUT("/imagenes/:id", handler.UpdateImage)
			protected.DELETE("/imagenes/:id", handler.DeleteImage)

			protected.GET("/remisiones/:id/reporte", handler.DownloadReport)
		}
	}

	return r
}

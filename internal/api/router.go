package api

import (
	"time"

	"github.com/Mieluoxxx/Vegax-Predict/internal/api/handlers"
	"github.com/Mieluoxxx/Vegax-Predict/internal/api/middleware"
	"github.com/Mieluoxxx/Vegax-Predict/internal/config"
	"github.com/Mieluoxxx/Vegax-Predict/internal/endpoint"
	"github.com/Mieluoxxx/Vegax-Predict/internal/events"
	"github.com/Mieluoxxx/Vegax-Predict/internal/lookup"
	"github.com/Mieluoxxx/Vegax-Predict/internal/predictor"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"github.com/Mieluoxxx/Vegax-Predict/internal/stats"
	"github.com/Mieluoxxx/Vegax-Predict/internal/upstream"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, encryptionKey []byte, registry *schema.Registry, cfg *config.Config) *gin.Engine {
	// 创建 Gin 引擎
	router := gin.Default()

	// 跨域与请求计数中间件
	router.Use(cors.Default())
	requestCounter := stats.NewRequestCounter(60 * time.Second)
	router.Use(middleware.RequestCounterMiddleware(requestCounter))

	// 共享依赖
	eventService := events.NewService(db)

	endpointRepo := endpoint.NewRepository(db)
	var endpointService *endpoint.Service
	if len(encryptionKey) > 0 {
		endpointService = endpoint.NewServiceWithEncryption(endpointRepo, encryptionKey)
	} else {
		endpointService = endpoint.NewService(endpointRepo)
	}

	lookupService := lookup.NewService(lookup.NewRepository(db))

	client := upstream.NewClient(cfg.Upstream.Timeout)
	predictService := predictor.NewService(registry, endpointService, client).
		WithEvents(eventService).
		WithStats(requestCounter)

	// 健康检查端点
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":            "healthy",
			"service":           "Vegax-Predict",
			"models_configured": len(registry.Keys()),
		})
	})

	// API 路由组
	apiGroup := router.Group("/api")
	{
		setupModelRoutes(apiGroup, registry)
		setupPredictRoutes(apiGroup, predictService, lookupService)
		setupLookupRoutes(apiGroup, lookupService, eventService)
		setupEndpointRoutes(apiGroup, endpointService, registry, eventService, cfg)
		setupStatsRoutes(apiGroup, db, requestCounter, eventService)
	}

	return router
}

// setupModelRoutes 配置模型契约路由
func setupModelRoutes(group *gin.RouterGroup, registry *schema.Registry) {
	handler := handlers.NewModelHandler(registry)
	group.GET("/models", handler.ListModels)
}

// setupPredictRoutes 配置预测路由
func setupPredictRoutes(group *gin.RouterGroup, predictService *predictor.Service, lookupService *lookup.Service) {
	handler := handlers.NewPredictHandler(predictService, lookupService)
	group.POST("/predict", handler.Predict)
	group.POST("/predict/all", handler.PredictAll)
}

// setupLookupRoutes 配置零件映射路由
func setupLookupRoutes(group *gin.RouterGroup, service *lookup.Service, eventService *events.Service) {
	handler := handlers.NewLookupHandler(service, eventService)
	group.GET("/part-number", handler.ResolvePartNumber)
	group.GET("/feature-availability", handler.FeatureAvailability)
}

// setupEndpointRoutes 配置端点管理路由
func setupEndpointRoutes(group *gin.RouterGroup, service *endpoint.Service, registry *schema.Registry, eventService *events.Service, cfg *config.Config) {
	healthChecker := endpoint.NewHealthChecker(cfg.Upstream.Timeout)
	handler := handlers.NewEndpointHandler(service, healthChecker, registry, eventService)

	endpoints := group.Group("/endpoints")
	{
		endpoints.POST("", handler.CreateEndpoint)
		endpoints.GET("", handler.ListEndpoints)
		endpoints.GET("/:id", handler.GetEndpoint)
		endpoints.PUT("/:id", handler.UpdateEndpoint)
		endpoints.DELETE("/:id", handler.DeleteEndpoint)
		endpoints.POST("/:id/health-check", handler.CheckEndpointHealth)
	}
}

// setupStatsRoutes 配置统计路由
func setupStatsRoutes(group *gin.RouterGroup, db *gorm.DB, requestCounter *stats.RequestCounter, eventService *events.Service) {
	handler := handlers.NewStatsHandler(db, requestCounter, eventService)
	group.GET("/stats", handler.GetStats)
	group.GET("/events", handler.GetEvents)
}

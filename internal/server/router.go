// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"yieldvault/internal/clock"
	"yieldvault/internal/handlers"
	"yieldvault/internal/insight"
	"yieldvault/internal/metrics"
	"yieldvault/internal/middleware"
	"yieldvault/internal/services"

	_ "yieldvault/internal/docs" // Import swagger docs
)

// Options configures the router.
type Options struct {
	DB      *gorm.DB
	Engine  *insight.Engine
	Clock   clock.Clock
	Metrics *metrics.Collector

	// AdminAPIKey guards catalog writes; empty disables them.
	AdminAPIKey string
}

// Services bundles the service layer built from Options.
type Services struct {
	Users       services.UserServicer
	Products    services.ProductServicer
	Investments services.InvestmentServicer
	Logs        services.TransactionLogServicer
	Insights    services.InsightServicer
}

// NewServices builds the service layer.
func NewServices(opts Options) Services {
	engine := opts.Engine
	if engine == nil {
		engine = insight.New(nil)
	}

	users := services.NewUserService(opts.DB)
	products := services.NewProductService(opts.DB, engine)
	investments := services.NewInvestmentService(opts.DB, opts.Clock, opts.Metrics)
	logs := services.NewTransactionLogService(opts.DB, opts.Clock, opts.Metrics)
	return Services{
		Users:       users,
		Products:    products,
		Investments: investments,
		Logs:        logs,
		Insights:    services.NewInsightService(engine, users, products, investments, logs),
	}
}

// NewRouter builds the Gin engine with every route mounted.
func NewRouter(opts Options, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Insights)
	profileHandler := handlers.NewProfileHandler(svc.Users)
	productHandler := handlers.NewProductHandler(svc.Products, svc.Insights)
	investmentHandler := handlers.NewInvestmentHandler(svc.Investments, svc.Insights)
	logHandler := handlers.NewLogHandler(svc.Logs, svc.Insights)
	healthHandler := handlers.NewHealthHandler(opts.DB, opts.Engine.Configured())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(opts.Metrics, svc.Logs))
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health and metrics
	router.GET("/api/health", healthHandler.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/analyze-password", authHandler.AnalyzePassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile/risk-appetite", profileHandler.UpdateRiskAppetite)

	products := protected.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/top", productHandler.GetTopProducts)
	products.GET("/recommendations", productHandler.GetRecommendations)
	products.GET("/:id", productHandler.GetProduct)

	catalog := products.Group("", middleware.AdminKeyMiddleware(opts.AdminAPIKey))
	catalog.POST("", productHandler.CreateProduct)
	catalog.PUT("/:id", productHandler.UpdateProduct)
	catalog.DELETE("/:id", productHandler.DeleteProduct)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/summary", investmentHandler.GetPortfolioSummary)
	investments.GET("/insights", investmentHandler.GetPortfolioInsights)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id/cancel", investmentHandler.CancelInvestment)

	logs := protected.Group("/logs")
	logs.GET("", logHandler.ListLogs)
	logs.GET("/summary", logHandler.GetLogSummary)
	logs.GET("/error-summary", logHandler.GetErrorSummary)

	return router
}

package router

import (
	"github.com/gin-gonic/gin"

	"crbill/internal/config"
	"crbill/internal/domain"
	"crbill/internal/handler"
	"crbill/internal/middleware"
	"crbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	clientH *handler.ClientHandler,
	developerH *handler.DeveloperHandler,
	crH *handler.CRHandler,
	invoiceH *handler.InvoiceHandler,
	paymentH *handler.PaymentHandler,
	advanceH *handler.AdvanceHandler,
	tdsH *handler.TDSHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/auth/change-password", authH.ChangePassword)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("/me", userH.Me)

	// Client organizations
	clients := protected.Group("/clients")
	clients.POST("", middleware.RequireRole(domain.RoleAdmin), clientH.Create)
	clients.GET("", middleware.RequireRole(domain.RoleAdmin), clientH.List)
	clients.GET("/:id", clientH.Get)
	clients.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), clientH.Update)
	clients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), clientH.Delete)

	// Developers
	developers := protected.Group("/developers")
	developers.POST("", middleware.RequireRole(domain.RoleAdmin), developerH.Create)
	developers.GET("", middleware.RequireRole(domain.RoleAdmin), developerH.List)
	developers.GET("/:id", developerH.Get)
	developers.GET("/:id/summary", middleware.RequireRole(domain.RoleAdmin, domain.RoleDeveloper), developerH.Summary)
	developers.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), developerH.Update)
	developers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), developerH.Delete)

	// Change requests
	crs := protected.Group("/crs")
	crs.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleClient), crH.Create)
	crs.GET("", crH.List)
	crs.GET("/:number", crH.Get)
	crs.PUT("/:number", middleware.RequireRole(domain.RoleAdmin), crH.Update)
	crs.POST("/:number/estimate", middleware.RequireRole(domain.RoleAdmin, domain.RoleDeveloper), crH.Estimate)
	crs.POST("/:number/approve", middleware.RequireRole(domain.RoleAdmin, domain.RoleClient), crH.Decide)
	crs.POST("/:number/status", middleware.RequireRole(domain.RoleAdmin, domain.RoleDeveloper), crH.UpdateStatus)
	crs.POST("/:number/ready-for-billing", middleware.RequireRole(domain.RoleAdmin, domain.RoleDeveloper), crH.ReadyForBilling)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.POST("", middleware.RequireRole(domain.RoleAdmin), invoiceH.Generate)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:number", invoiceH.Get)
	invoices.PUT("/:number/status", middleware.RequireRole(domain.RoleAdmin), invoiceH.UpdateStatus)
	invoices.GET("/:number/document", invoiceH.Document)

	// Payments
	payments := protected.Group("/payments")
	payments.POST("", middleware.RequireRole(domain.RoleAdmin), paymentH.Record)
	payments.GET("", paymentH.List)
	payments.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), paymentH.Delete)

	// Advances
	advances := protected.Group("/advances")
	advances.POST("", middleware.RequireRole(domain.RoleAdmin), advanceH.Create)
	advances.GET("", advanceH.List)
	advances.POST("/:id/adjust", middleware.RequireRole(domain.RoleAdmin), advanceH.Adjust)

	// TDS rate history
	tds := protected.Group("/tds")
	tds.PUT("", middleware.RequireRole(domain.RoleAdmin), tdsH.SetRate)
	tds.GET("/current", tdsH.Current)
	tds.GET("/history", tdsH.History)

	// Reports
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(domain.RoleAdmin))
	reports.GET("/dashboard", reportH.Dashboard)
	reports.GET("/developers/:id/summary", reportH.DeveloperSummary)
	reports.GET("/outstanding", reportH.Outstanding)
	reports.GET("/monthly", reportH.Monthly)
	reports.GET("/invoices/export", reportH.ExportInvoices)

	return r
}

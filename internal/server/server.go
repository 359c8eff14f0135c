// Package server is the HTTP surface of the back office. Handlers stay
// thin: bind, call the feature service, map the error, audit the mutation.
package server

import (
	"context"
	"errors"
	"net/http"

	auditservice "github.com/anish-1308/ibilling/internal/audit/service"
	companydomain "github.com/anish-1308/ibilling/internal/company/domain"
	"github.com/anish-1308/ibilling/internal/config"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	dashboarddomain "github.com/anish-1308/ibilling/internal/dashboard/domain"
	inventorydomain "github.com/anish-1308/ibilling/internal/inventory/domain"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/anish-1308/ibilling/internal/observability/logger"
	"github.com/anish-1308/ibilling/internal/observability/metrics"
	supplierdomain "github.com/anish-1308/ibilling/internal/supplier/domain"
	tourdomain "github.com/anish-1308/ibilling/internal/tour/domain"
	traveldomain "github.com/anish-1308/ibilling/internal/travelservice/domain"
	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	invoiceSvc   invoicedomain.Service
	customerSvc  customerdomain.Service
	supplierSvc  supplierdomain.Service
	tourSvc      tourdomain.Service
	travelSvc    traveldomain.Service
	inventorySvc inventorydomain.Service
	userSvc      userdomain.Service
	companySvc   companydomain.Service
	dashboardSvc dashboarddomain.Service
	auditSvc     auditservice.Service
}

type ServerParam struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB

	InvoiceSvc   invoicedomain.Service
	CustomerSvc  customerdomain.Service
	SupplierSvc  supplierdomain.Service
	TourSvc      tourdomain.Service
	TravelSvc    traveldomain.Service
	InventorySvc inventorydomain.Service
	UserSvc      userdomain.Service
	CompanySvc   companydomain.Service
	DashboardSvc dashboarddomain.Service
	AuditSvc     auditservice.Service `optional:"true"`
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:          p.Config,
		log:          p.Log.Named("server"),
		db:           p.DB,
		invoiceSvc:   p.InvoiceSvc,
		customerSvc:  p.CustomerSvc,
		supplierSvc:  p.SupplierSvc,
		tourSvc:      p.TourSvc,
		travelSvc:    p.TravelSvc,
		inventorySvc: p.InventorySvc,
		userSvc:      p.UserSvc,
		companySvc:   p.CompanySvc,
		dashboardSvc: p.DashboardSvc,
		auditSvc:     p.AuditSvc,
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

// RegisterRoutes mounts every API route on the engine.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", metrics.Handler())

	api := engine.Group("/api")

	invoices := api.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.POST("/preview", s.PreviewInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoice)
	invoices.PATCH("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)
	invoices.POST("/:id/payments", s.RecordInvoicePayment)
	invoices.POST("/:id/send", s.SendInvoice)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomerByID)
	customers.PATCH("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	suppliers := api.Group("/suppliers")
	suppliers.POST("", s.CreateSupplier)
	suppliers.GET("", s.ListSuppliers)
	suppliers.GET("/:id", s.GetSupplierByID)
	suppliers.PATCH("/:id", s.UpdateSupplier)
	suppliers.DELETE("/:id", s.DeleteSupplier)

	tours := api.Group("/tours")
	tours.POST("", s.CreateTour)
	tours.GET("", s.ListTours)
	tours.GET("/:id", s.GetTourByID)
	tours.PATCH("/:id", s.UpdateTour)
	tours.DELETE("/:id", s.DeleteTour)

	services := api.Group("/travel-services")
	services.POST("", s.CreateTravelService)
	services.GET("", s.ListTravelServices)
	services.GET("/:id", s.GetTravelServiceByID)
	services.PATCH("/:id", s.UpdateTravelService)
	services.DELETE("/:id", s.DeleteTravelService)

	inventory := api.Group("/inventory")
	inventory.POST("", s.CreateInventoryItem)
	inventory.GET("", s.ListInventoryItems)
	inventory.GET("/:id", s.GetInventoryItemByID)
	inventory.PATCH("/:id", s.UpdateInventoryItem)
	inventory.DELETE("/:id", s.DeleteInventoryItem)

	users := api.Group("/users")
	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/:id", s.GetUserByID)
	users.PATCH("/:id", s.UpdateUser)
	users.DELETE("/:id", s.DeleteUser)
	api.POST("/login", s.Login)

	api.GET("/company", s.GetCompanyProfile)
	api.PATCH("/company", s.UpdateCompanyProfile)

	api.GET("/dashboard/stats", s.DashboardStats)
	api.GET("/dashboard/activity", s.DashboardActivity)

	api.GET("/audit", s.ListAuditLogs)
}

// actorFrom resolves the acting user for audit stamping. The SPA sends the
// logged-in user's email in X-Actor.
func actorFrom(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor"); actor != "" {
		return actor
	}
	return "system"
}

func (s *Server) audit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(c.Request.Context(), auditservice.Entry{
		ActorType:  "user",
		ActorID:    actorFrom(c),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

// RunHTTP wires routes and runs the listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, server *Server, cfg config.Config, log *zap.Logger) {
	server.RegisterRoutes(engine)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	})
}

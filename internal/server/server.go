// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	auditdomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/audit/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/notifier"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/observability/logger"
	reconciledomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

type Params struct {
	fx.In

	Cfg          config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	Engine       *gin.Engine
	InvoiceSvc   invoicedomain.Service
	ReconcileSvc reconciledomain.Service
	AuditSvc     auditdomain.Service `optional:"true"`
	Notifier     notifier.Notifier   `optional:"true"`
}

type Server struct {
	cfg          config.Config
	log          *zap.Logger
	db           *gorm.DB
	engine       *gin.Engine
	invoiceSvc   invoicedomain.Service
	reconcileSvc reconciledomain.Service
	auditSvc     auditdomain.Service
	notifier     notifier.Notifier
	batchLimiter *rateLimiter
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		db:           p.DB,
		engine:       p.Engine,
		invoiceSvc:   p.InvoiceSvc,
		reconcileSvc: p.ReconcileSvc,
		auditSvc:     p.AuditSvc,
		notifier:     p.Notifier,
		batchLimiter: newRateLimiter(30, time.Minute),
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.Use(s.BearerRequired())
	{
		api.GET("/invoices", s.ListInvoices)
		api.GET("/invoices/:id", s.GetInvoiceByID)
		api.POST("/invoices", s.CreateInvoice)
		api.POST("/invoices/batch-payments", s.BatchPayments)
	}
}

// Health reports liveness plus database reachability.
func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

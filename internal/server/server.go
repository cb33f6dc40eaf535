package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
	"github.com/smallbiznis/billora/internal/config"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	obsmetrics "github.com/smallbiznis/billora/internal/observability/metrics"
	"github.com/smallbiznis/billora/internal/providers/pdf"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, httpMetrics, registry)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	customerSvc  customerdomain.Service
	companySvc   companydomain.Service
	quotationSvc quotationdomain.Service
	invoiceSvc   invoicedomain.Service
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	CustomerSvc  customerdomain.Service
	CompanySvc   companydomain.Service
	QuotationSvc quotationdomain.Service
	InvoiceSvc   invoicedomain.Service
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("http.server"),
		genID:        p.GenID,
		customerSvc:  p.CustomerSvc,
		companySvc:   p.CompanySvc,
		quotationSvc: p.QuotationSvc,
		invoiceSvc:   p.InvoiceSvc,
		pdfProvider:  p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Company profile --------
	api.GET("/company", s.GetCompanyProfile)
	api.PUT("/company", s.UpdateCompanyProfile)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	// -------- Quotations --------
	api.GET("/quotations", s.ListQuotations)
	api.POST("/quotations", s.CreateQuotation)
	api.GET("/quotations/:id", s.GetQuotationByID)
	api.PUT("/quotations/:id", s.UpdateQuotation)
	api.DELETE("/quotations/:id", s.DeleteQuotation)
	api.POST("/quotations/:id/send", s.SendQuotation)
	api.POST("/quotations/:id/accept", s.AcceptQuotation)
	api.POST("/quotations/:id/convert", s.ConvertQuotation)
	api.GET("/quotations/:id/pdf", s.DownloadQuotationPDF)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.POST("/invoices/:id/send", s.SendInvoice)
	api.POST("/invoices/:id/mark-paid", s.MarkInvoicePaid)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
}

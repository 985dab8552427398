package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/agristat/internal/api/controller"
	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/pkg/logger"
	"github.com/ougirez/agristat/internal/pkg/metrics"
	"github.com/ougirez/agristat/internal/service/commodity"
	"github.com/ougirez/agristat/internal/service/importer"
)

type APIOpts struct {
	Commodities *commodity.Service
	Importer    *importer.Service
	Validate    *validator.Validate
	CORSOrigins []string
	// ResetSource builds the dataset installed by POST /admin/reset.
	ResetSource func() []*domain.Commodity
}

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	err := svc.router.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	logger.Fatal(context.Background(), err)
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router for in-process use.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(opts APIOpts) (*APIService, error) {
	if opts.Commodities == nil || opts.Importer == nil || opts.Validate == nil || opts.ResetSource == nil {
		return nil, errors.New("api: missing dependency")
	}

	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.OFF)

	svc.router.Validator = NewValidator(opts.Validate)
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = SonicSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestID())
	svc.router.Use(svc.RequestLoggerMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	svc.router.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(opts.Commodities, opts.Importer, opts.ResetSource)

	commodities := api.Group("/commodities")
	commodities.GET("", cntrl.ListCommodities)
	commodities.POST("", cntrl.CreateCommodity)
	commodities.GET("/:id", cntrl.GetCommodity)
	commodities.PUT("/:id", cntrl.UpdateCommodity)
	commodities.DELETE("/:id", cntrl.DeleteCommodity)

	analytics := api.Group("/analytics")
	analytics.GET("/dashboard", cntrl.GetDashboard)
	analytics.GET("/regions", cntrl.GetRegionalComparison)
	analytics.GET("/trend", cntrl.GetProductivityTrend)

	api.GET("/catalog", cntrl.GetCatalog)

	providers := api.Group("/providers")
	providers.POST("/import", cntrl.ImportTables)

	admin := api.Group("/admin")
	admin.POST("/reset", cntrl.ResetData)

	return svc, nil
}

package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/pkg/logger"
	"github.com/ougirez/agristat/internal/pkg/metrics"
)

// RequestLoggerMiddleware attaches request fields to the context logger and
// records the request in the HTTP metrics. It must run after RequestID.
func (svc *APIService) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}

		reqCtx := logger.ToContext(req.Context(),
			"request_id", ctx.Response().Header().Get(echo.HeaderXRequestID),
			"method", req.Method,
			"route", route,
		)
		ctx.SetRequest(req.WithContext(reqCtx))

		start := time.Now()
		if err := next(ctx); err != nil {
			ctx.Error(err)
		}
		elapsed := time.Since(start)

		status := ctx.Response().Status
		metrics.RequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(req.Method, route).Observe(float64(elapsed.Microseconds()) / 1000)

		logger.Infof(reqCtx, "%s %s -> %d in %s", req.Method, req.URL.RequestURI(), status, elapsed)

		return nil
	}
}

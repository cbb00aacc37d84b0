package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"notpickedup/internal/support/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance with every route of the service.
// m and gatherer may be nil, which disables request metrics and /metrics.
func NewRouter(s *Server, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	}))
	if m != nil {
		e.Use(metricsMiddleware(m))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api/v1")
	api.GET("/statuses", s.GetStatuses)
	api.GET("/bulk-actions", s.GetBulkActions)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)

	admin := e.Group("/admin")
	admin.GET("/orders", s.AdminOrders)
	admin.POST("/orders/bulk", s.BulkAction)

	return e
}

var metricsSkipPaths = map[string]bool{"/health": true, "/metrics": true}

func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if metricsSkipPaths[path] {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if err != nil {
				code = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					code = he.Code
				}
			}

			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
			m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

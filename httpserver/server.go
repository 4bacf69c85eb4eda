// Package httpserver assembles the echo server shared by main and `serve`.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"products.GO/api"
	_ "products.GO/api/graphql"
	_ "products.GO/api/health"
	_ "products.GO/api/product"
	"products.GO/config"
	"products.GO/core/errx"
	"products.GO/core/logx"
	productService "products.GO/service/product"
)

const shutdownTimeout = 10 * time.Second

// New returns an echo instance with the middleware stack and every registered
// route module applied. Versioned modules are mounted under /v1.
func New(d *api.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errx.HTTPErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(requestDuration())
	e.Use(requestLogger())
	e.Use(middleware.Gzip())

	api.ApplyRoutes(e, d)
	api.ApplyModules(e.Group("/v1"), d)
	return e
}

// requestDuration sets X-Request-Duration-ms just before the response is written.
func requestDuration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			})
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := logx.Info()
			if v.Error != nil {
				ev = logx.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// ProductCache picks the lookup cache from configuration: none when
// CACHE_TTL_SECONDS is 0, Redis when it answers, process memory otherwise.
func ProductCache(c *config.Config) productService.Cache {
	if c.CacheTTLSeconds <= 0 {
		return nil
	}
	ttl := time.Duration(c.CacheTTLSeconds) * time.Second
	if c.RedisAddr != "" {
		if err := config.InitRedis(); err != nil {
			logx.Warn().Err(err).Str("addr", c.RedisAddr).Msg("redis unreachable, using in-process cache")
		} else {
			logx.Info().Str("addr", c.RedisAddr).Msg("redis cache enabled")
			return productService.NewRedisCache(config.RedisClient, ttl)
		}
	}
	return productService.NewLocalCache(ttl)
}

// Run serves on c.Port until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, c *config.Config, db *gorm.DB) error {
	lookup := productService.NewLookupService(db, ProductCache(c))
	e := New(&api.Deps{DB: db, Lookup: lookup})

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("port", c.Port).Str("env", c.Env).Msg("server running")
		errCh <- e.Start(":" + c.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

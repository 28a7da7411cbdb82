package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"zwallpaper/internal/logging"
)

// NewServer returns an echo instance with the API routes and middleware
func NewServer(svc Service, logger *log.Logger) *echo.Echo {
	logger = logging.OrDiscard(logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger

	NewHandler(svc, logger).RegisterRoutes(e)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Debugf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))

	return e
}

// Serve runs e on addr until ctx is cancelled
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

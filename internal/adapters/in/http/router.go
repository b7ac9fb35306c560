package http

import (
	"log/slog"
	"net/http"
	"strings"

	_ "printdesk/internal/generated/docs"
	"printdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what NewRouter needs besides the Server.
type RouterConfig struct {
	JWT JWTConfig
	// Validate enables request validation against the embedded API document.
	Validate bool
}

// NewRouter builds the echo instance: health and docs are public, the API
// routes require a bearer token.
func NewRouter(server *Server, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	jwtCfg := cfg.JWT
	if jwtCfg.Skipper == nil {
		jwtCfg.Skipper = isPublic
	}
	e.Use(JWTAuth(jwtCfg))

	if cfg.Validate {
		doc, err := servers.GetSwagger()
		if err != nil {
			return nil, err
		}
		validator, err := RequestValidator(doc)
		if err != nil {
			return nil, err
		}
		e.Use(validator)
	}

	servers.RegisterHandlers(e, server)
	return e, nil
}

func isPublic(ctx echo.Context) bool {
	path := ctx.Request().URL.Path
	return path == "/health" || strings.HasPrefix(path, "/swagger/")
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(ctx echo.Context) bool {
			return ctx.Request().URL.Path == "/health"
		},
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "path", v.URIPath, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.InfoContext(ctx.Request().Context(), "Request handled", attrs...)
			return nil
		},
	})
}

package httpserver

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/validate"
)

type Options struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewEcho builds the echo instance with the middleware chain shared by every route.
func NewEcho(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.EchoValidator{}

	e.Pre(echomw.RemoveTrailingSlash())

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	if len(o.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: o.CORSOrigins}))
	} else {
		e.Use(echomw.CORS())
	}

	if o.RateLimitRPS > 0 {
		burst := o.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		e.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health/live" || c.Path() == "/health/ready"
			},
			Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(o.RateLimitRPS),
				Burst:     burst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	return e
}

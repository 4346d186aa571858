package webserver

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/vinoteca/catalog/internal/identity"
)

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
}

// jwtMiddleware checks the bearer signature and expiry.
func jwtMiddleware(id *identity.Service) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    id.Secret(),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    identity.TokenContextKey,
		NewClaimsFunc: id.NewClaims,
		ErrorHandler: func(c echo.Context, err error) error {
			zap.L().Debug("bearer token rejected", zap.Error(err))
			return unauthenticated(c)
		},
	})
}

// requireAccount loads the token row and account behind a valid signature.
func requireAccount(id *identity.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := id.ResolveCurrentAccount(c); err != nil {
				if !errors.Is(err, identity.ErrUnauthenticated) {
					zap.L().Error("resolve account failed", zap.Error(err))
				}
				return unauthenticated(c)
			}
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				zap.L().Warn("request", fields...)
				return nil
			}
			zap.L().Debug("request", fields...)
			return nil
		},
	})
}

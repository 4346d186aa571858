package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/vinoteca/catalog/docs"
	"github.com/vinoteca/catalog/internal/app"
	"github.com/vinoteca/catalog/internal/assets"
)

const appCtxKey = "appCtx"

var server *AdminServer

// AdminServer is the HTTP front of the catalog.
type AdminServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
	auth   []echo.MiddlewareFunc
}

// Init creates the global server; routes are added afterwards.
func Init(appCtx app.AppContext) {
	server = NewAdminServer(appCtx)
}

func NewAdminServer(appCtx app.AppContext) *AdminServer {
	cfg := appCtx.Config()
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &JSONSerializer{}
	e.Validator = NewValidator()
	if cfg.System.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit(cfg.Storage.MaxBytes)))
	e.Use(requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appCtxKey, appCtx)
			return next(c)
		}
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s := &AdminServer{
		root:   e,
		api:    e.Group("/api"),
		appCtx: appCtx,
	}
	s.auth = []echo.MiddlewareFunc{jwtMiddleware(appCtx.Identity()), requireAccount(appCtx.Identity())}
	return s
}

// bodyLimit leaves room for the form fields around one upload.
func bodyLimit(maxUpload int64) string {
	if maxUpload <= 0 {
		maxUpload = assets.DefaultMaxBytes
	}
	return fmt.Sprintf("%dK", 2*maxUpload/1024)
}

// Handler returns the root HTTP handler
func Handler() http.Handler {
	return server.root
}

// Listen starts serving and blocks until the server stops.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Start admin server %s", addr)
	err := server.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return server.root.Shutdown(ctx)
}

// GetAppContext returns the application bound to the request
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appCtxKey).(app.AppContext)
}

// Auth returns the middlewares that require a valid bearer token
func Auth() []echo.MiddlewareFunc {
	return server.auth
}

func GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET(path, h, m...)
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stitchworks/storefront/config"
	"github.com/stitchworks/storefront/pkg/mailer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context keys under which per-request dependencies are stashed.
const (
	DBContextKey     = "storefront_db"
	ConfigContextKey = "storefront_config"
	MailerContextKey = "storefront_mailer"
)

// AppContext is the slice of the application the web layer needs.
type AppContext interface {
	DB() *gorm.DB
	Config() *config.AppConfig
	Mailer() *mailer.Mailer
}

type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	appc AppContext
}

var server *WebServer

type CustomValidator struct {
	validate *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewValidator returns the request validator the server installs on
// echo; handler tests install the same one.
func NewValidator() echo.Validator {
	return &CustomValidator{validate: validator.New()}
}

// Init builds the echo engine, middleware chain, and the /api group
// guarded by JWT (with a skipper for the public storefront surface).
func Init(appc AppContext) *WebServer {
	cfg := appc.Config()
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.Web.UploadLimit))
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBContextKey, appc.DB())
			c.Set(ConfigContextKey, cfg)
			c.Set(MailerContextKey, appc.Mailer())
			return next(c)
		}
	})

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Embroidery E-commerce API is running",
		})
	})

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
		Skipper:    publicRoute,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid token",
			})
		},
	}))

	server = &WebServer{root: e, api: api, appc: appc}
	return server
}

// publicRoute exempts the storefront-facing surface from the JWT guard:
// catalog reads, site images, the team page, the contact form, and
// login itself. Everything else on /api needs a bearer token.
func publicRoute(c echo.Context) bool {
	method := c.Request().Method
	path := c.Request().URL.Path

	switch method {
	case http.MethodGet:
		switch {
		case strings.HasPrefix(path, "/api/products"):
			return true
		case strings.HasPrefix(path, "/api/images/location/"):
			return true
		case path == "/api/images/all":
			return true
		case path == "/api/team":
			return true
		}
	case http.MethodPost:
		switch path {
		case "/api/contacts", "/api/auth/login":
			return true
		}
	}
	return false
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote", c.RealIP()),
			)
			return err
		}
	}
}

// ApiGET registers an authenticated-or-public GET route under /api.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Listen serves HTTP until the listener fails or Shutdown is called.
func Listen() error {
	cfg := server.appc.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("http server listening on %s", addr)
	return server.root.Start(addr)
}

func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

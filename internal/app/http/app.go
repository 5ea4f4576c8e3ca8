package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"agriecom/internal/domain/models"
	appmiddleware "agriecom/internal/middleware"
	httprouters "agriecom/internal/transport/http"
	"agriecom/internal/transport/http/dto/response"

	"agriecom/internal/lib/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
}

func New(log *slog.Logger, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = &CustomValidator{validator: validation.New()}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api/v1")
	{
		api.POST("/register", s.routers.Register)
		api.POST("/login", s.routers.Login)
		api.POST("/logout", s.routers.Logout)
		api.GET("/session", s.routers.Session)

		userGroup := api.Group("/users")
		{
			userGroup.GET("", s.routers.ListUsers, s.adminOnlyMiddleware)
			userGroup.PATCH("/:id", s.routers.UpdateProfile, s.selfOrAdminMiddleware)
			userGroup.POST("/:id/block", s.routers.BlockUser, s.adminOnlyMiddleware)
			userGroup.DELETE("/:id", s.routers.DeleteUser, s.adminOnlyMiddleware)
		}

		productGroup := api.Group("/products")
		{
			productGroup.GET("", s.routers.ListProducts)
			productGroup.GET("/:id", s.routers.GetProduct)
			productGroup.POST("", s.routers.CreateProduct)
			productGroup.PATCH("/:id", s.routers.UpdateProduct, s.sessionRequiredMiddleware)
			productGroup.DELETE("/:id", s.routers.DeleteProduct, s.sessionRequiredMiddleware)
		}

		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", s.routers.GetCart)
			cartGroup.POST("/items", s.routers.AddCartItem)
			cartGroup.PATCH("/items/:productId", s.routers.SetCartQuantity)
			cartGroup.DELETE("/items/:productId", s.routers.RemoveCartItem)
			cartGroup.DELETE("", s.routers.ClearCart)
		}
	}
}

func (s *Server) MustRun() {
	if err := s.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func (s *Server) Run() error {
	const op = "httpapp.Server.Run"

	s.log.Info("http server starting", slog.String("addr", s.addr()))

	if err := s.e.Start(s.addr()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "httpapp.Server.Stop"

	s.log.Info("http server stopping")

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return s.host + ":" + s.port
}

func (s *Server) sessionRequiredMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.routers.SessionService.Current(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, response.ErrSessionRequired)
		}

		return next(c)
	}
}

func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.routers.SessionService.Current(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, response.ErrSessionRequired)
		}
		if user.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, response.ErrAdminRequired)
		}

		return next(c)
	}
}

// selfOrAdminMiddleware lets a user edit their own profile and admins edit
// anyone's.
func (s *Server) selfOrAdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.routers.SessionService.Current(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, response.ErrSessionRequired)
		}
		if user.ID != c.Param("id") && user.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, response.ErrAdminRequired)
		}

		return next(c)
	}
}

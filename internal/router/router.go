package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogsphere/internal/auth"
	"blogsphere/internal/envelope"
	"blogsphere/internal/handler"
	"blogsphere/internal/logger"
	appmw "blogsphere/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Blog         *handler.BlogHandler
	Comment      *handler.CommentHandler
	Follow       *handler.FollowHandler
	Notification *handler.NotificationHandler
	Photo        *handler.PhotoHandler
}

// Deps carries what the middleware stack needs.
type Deps struct {
	Log        *logger.Logger
	JWTSecret  []byte
	Revocation appmw.RevocationChecker
	Registry   *prometheus.Registry
}

// Register wires routes and middleware.
func Register(e *echo.Echo, deps Deps, h Handlers) {
	e.HTTPErrorHandler = handler.ErrorHandler(deps.Log)
	e.Validator = &CustomValidator{validator: validator.New()}

	metrics := appmw.NewMetrics(
		appmw.WithRegistry(deps.Registry),
		appmw.WithSkipper(func(c echo.Context) bool { return c.Path() == "/metrics" }),
	)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(deps.Log))
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/signup", h.Auth.Signup)
	api.POST("/users/login", h.Auth.Login)
	api.GET("/blogs", h.Blog.List)
	api.GET("/blogs/:id", h.Blog.Get)
	api.GET("/comments/blog/:blogId", h.Comment.List)
	api.GET("/photos/:id/content", h.Photo.Content)
	api.GET("/users/:id", h.User.GetUser)
	api.GET("/users/:id/blogs", h.Blog.ListByUser)
	api.GET("/users/:id/followers", h.Follow.Followers)
	api.GET("/users/:id/following", h.Follow.Following)
	api.GET("/users/:id/photos", h.Photo.ListByUser)

	// Secured routes (require JWT authentication)
	secured := api.Group("",
		echojwt.WithConfig(JWTConfig(deps.JWTSecret)),
		appmw.RejectRevoked(deps.Revocation, handler.ContextKeyUser),
	)

	secured.POST("/users/logout", h.Auth.Logout)
	secured.GET("/users/me", h.User.Me)
	secured.PUT("/users/me", h.User.UpdateMe)

	secured.POST("/blogs", h.Blog.Create)
	secured.PUT("/blogs/:id", h.Blog.Update)
	secured.DELETE("/blogs/:id", h.Blog.Delete)

	secured.POST("/comments/blog/:blogId", h.Comment.Add)
	secured.POST("/comments/:id/reply", h.Comment.Reply)
	secured.PUT("/comments/:id", h.Comment.Update)
	secured.DELETE("/comments/:id", h.Comment.Delete)

	secured.POST("/users/:id/follow", h.Follow.Follow)
	secured.DELETE("/users/:id/follow", h.Follow.Unfollow)

	secured.GET("/notifications", h.Notification.List)
	secured.PUT("/notifications/read-all", h.Notification.MarkAllRead)
	secured.PUT("/notifications/:id/read", h.Notification.MarkRead)
	secured.GET("/notifications/stream", h.Notification.Stream)

	secured.POST("/photos", h.Photo.Upload)
	secured.GET("/photos", h.Photo.ListMine)
	secured.DELETE("/photos/:id", h.Photo.Delete)
}

// JWTConfig builds the echo-jwt configuration: bearer header or, for
// WebSocket clients that cannot set headers, a token query parameter.
func JWTConfig(secret []byte) echojwt.Config {
	return echojwt.Config{
		SigningKey:  secret,
		ContextKey:  handler.ContextKeyUser,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,query:token",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "invalid or expired token", "INVALID_TOKEN"))
		},
	}
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "err", v.Error)
			}
			log.Log(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

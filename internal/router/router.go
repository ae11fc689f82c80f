package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"skybox/internal/auth"
	"skybox/internal/errors"
	"skybox/internal/handler"
	"skybox/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	sessions service.SessionService,
	authHandler *handler.AuthHandler,
	fileHandler *handler.FileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/sign-up", authHandler.SignUp)
	api.POST("/sign-in", authHandler.SignIn)

	// Secured routes: echo-jwt rejects missing or mis-signed tokens at the
	// edge, then the session middleware resolves the account and enforces
	// the active flag.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:    tokens.SigningKey(),
		SigningMethod: tokens.Algorithm(),
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
	}), resolveSession(sessions))

	secured.GET("/me", authHandler.Me)

	// File routes
	secured.POST("/files/upload", fileHandler.Upload)
	secured.GET("/files", fileHandler.List)
	secured.POST("/files/delete", fileHandler.Delete)
	secured.POST("/files/rename", fileHandler.Rename)
	secured.POST("/folders", fileHandler.CreateFolder)
}

// resolveSession turns the bearer token into an account record in the
// request context. Unknown subjects and disabled accounts are rejected here,
// before any handler runs.
func resolveSession(sessions service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: errors.ErrUnauthenticated.Error(),
					Code:  "UNAUTHENTICATED",
				})
			}

			user, err := sessions.Resolve(c.Request().Context(), raw)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set("currentUser", user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

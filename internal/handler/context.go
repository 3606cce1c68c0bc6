package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogsphere/internal/auth"
	"blogsphere/internal/envelope"
)

// ContextKeyUser is where echo-jwt stores the parsed token.
const ContextKeyUser = "user"

// ClaimsFromContext returns the claims of the authenticated caller.
func ClaimsFromContext(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get(ContextKeyUser).(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func respond[T any](c echo.Context, status int, message string, data T) error {
	return c.JSON(status, envelope.OK(status, message, data))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/model"
	"blogsphere/internal/service"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	UserName string `json:"userName" validate:"required,max=100"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token and the user it belongs to.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Signup godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} envelope.Response[model.User]
// @Failure 400 {object} envelope.Error
// @Failure 409 {object} envelope.Error
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, req.UserName)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "user registered successfully", user)
}

// Login godoc
// @Summary Login user
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} envelope.Response[LoginResponse]
// @Failure 400 {object} envelope.Error
// @Failure 401 {object} envelope.Error
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "logged in", LoginResponse{Token: token, User: user})
}

// Logout godoc
// @Summary Revoke the current token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Error
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.authService.Logout(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "logged out", nil)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/model"
	"blogsphere/internal/service"
)

// UserHandler serves profile endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateProfileRequest holds the optional profile fields.
type UpdateProfileRequest struct {
	UserName    *string `json:"userName" validate:"omitempty,min=1,max=100"`
	Avatar      *string `json:"avatar" validate:"omitempty,max=512"`
	Banner      *string `json:"banner" validate:"omitempty,max=512"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// GetUser godoc
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[model.User]
// @Failure 400 {object} envelope.Error
// @Failure 404 {object} envelope.Error
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user fetched", user)
}

// Me godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope.Response[model.User]
// @Failure 401 {object} envelope.Error
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user fetched", user)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} envelope.Response[model.User]
// @Failure 400 {object} envelope.Error
// @Failure 401 {object} envelope.Error
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), id, model.ProfilePatch{
		UserName:    req.UserName,
		Avatar:      req.Avatar,
		Banner:      req.Banner,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated", user)
}

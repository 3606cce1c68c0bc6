package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/service"
)

// FollowHandler serves the follower graph.
type FollowHandler struct {
	svc service.FollowService
}

// NewFollowHandler creates a FollowHandler.
func NewFollowHandler(svc service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow godoc
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 400 {object} envelope.Error
// @Failure 404 {object} envelope.Error
// @Failure 409 {object} envelope.Error
// @Router /users/{id}/follow [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	target, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Follow(c.Request().Context(), me, target); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "followed", nil)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Error
// @Router /users/{id}/follow [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	target, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Unfollow(c.Request().Context(), me, target); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "unfollowed", nil)
}

// Followers godoc
// @Summary List followers of a user
// @Tags follows
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[[]model.User]
// @Failure 404 {object} envelope.Error
// @Router /users/{id}/followers [get]
func (h *FollowHandler) Followers(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.svc.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "followers fetched", users)
}

// Following godoc
// @Summary List users a user follows
// @Tags follows
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[[]model.User]
// @Failure 404 {object} envelope.Error
// @Router /users/{id}/following [get]
func (h *FollowHandler) Following(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.svc.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "following fetched", users)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/service"
)

// CommentHandler serves comment endpoints.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CommentRequest is the body of a comment or reply.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// List godoc
// @Summary List comments of a blog with their replies
// @Tags comments
// @Produce json
// @Param blogId path string true "Blog ID"
// @Success 200 {object} envelope.Response[[]model.Comment]
// @Failure 404 {object} envelope.Error
// @Router /comments/blog/{blogId} [get]
func (h *CommentHandler) List(c echo.Context) error {
	blogID, err := uuidParam(c, "blogId")
	if err != nil {
		return err
	}
	comments, err := h.svc.List(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "comments fetched", comments)
}

// Add godoc
// @Summary Comment on a blog
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogId path string true "Blog ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} envelope.Response[model.Comment]
// @Failure 404 {object} envelope.Error
// @Router /comments/blog/{blogId} [post]
func (h *CommentHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	blogID, err := uuidParam(c, "blogId")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Add(c.Request().Context(), userID, blogID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "comment added", comment)
}

// Reply godoc
// @Summary Reply to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body CommentRequest true "Reply"
// @Success 201 {object} envelope.Response[model.Comment]
// @Failure 404 {object} envelope.Error
// @Router /comments/{id}/reply [post]
func (h *CommentHandler) Reply(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	parentID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reply, err := h.svc.Reply(c.Request().Context(), userID, parentID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "reply added", reply)
}

// Update godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body CommentRequest true "New content"
// @Success 200 {object} envelope.Response[model.Comment]
// @Failure 403 {object} envelope.Error
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Update(c.Request().Context(), userID, id, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "comment updated", comment)
}

// Delete godoc
// @Summary Delete a comment and its replies
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Error
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "comment deleted", nil)
}

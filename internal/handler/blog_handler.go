package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/envelope"
	"blogsphere/internal/model"
	"blogsphere/internal/service"
)

// BlogHandler serves blog endpoints.
type BlogHandler struct {
	svc service.BlogService
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// BlogRequest is the body of a new blog.
type BlogRequest struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"omitempty,max=512"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

// UpdateBlogRequest carries the fields to change on a blog.
type UpdateBlogRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content    *string  `json:"content" validate:"omitempty,min=1"`
	CoverImage *string  `json:"coverImage" validate:"omitempty,max=512"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

// BlogView is the wire shape of a blog.
type BlogView struct {
	model.Blog
	Tags []string `json:"tags"`
}

func toBlogView(b model.Blog) BlogView {
	return BlogView{Blog: b, Tags: b.TagList()}
}

func toBlogViews(blogs []model.Blog) []BlogView {
	out := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogView(b))
	}
	return out
}

func pagination(c echo.Context) service.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return service.NewPagination(page, limit)
}

// List godoc
// @Summary List blogs, newest first
// @Tags blogs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} envelope.Response[envelope.Page[BlogView]]
// @Router /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	p := pagination(c)
	blogs, total, err := h.svc.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "blogs fetched", envelope.Page[BlogView]{
		Items: toBlogViews(blogs), Page: p.Page, Limit: p.Limit, Total: total,
	})
}

// ListByUser godoc
// @Summary List blogs written by a user
// @Tags blogs
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} envelope.Response[envelope.Page[BlogView]]
// @Failure 400 {object} envelope.Error
// @Router /users/{id}/blogs [get]
func (h *BlogHandler) ListByUser(c echo.Context) error {
	authorID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p := pagination(c)
	blogs, total, err := h.svc.ListByAuthor(c.Request().Context(), authorID, p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "blogs fetched", envelope.Page[BlogView]{
		Items: toBlogViews(blogs), Page: p.Page, Limit: p.Limit, Total: total,
	})
}

// Get godoc
// @Summary Get a blog
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} envelope.Response[BlogView]
// @Failure 404 {object} envelope.Error
// @Router /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	blog, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "blog fetched", toBlogView(*blog))
}

// Create godoc
// @Summary Publish a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BlogRequest true "Blog"
// @Success 201 {object} envelope.Response[BlogView]
// @Failure 400 {object} envelope.Error
// @Failure 401 {object} envelope.Error
// @Router /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req BlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	blog, err := h.svc.Create(c.Request().Context(), userID, service.BlogInput{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "blog created", toBlogView(*blog))
}

// Update godoc
// @Summary Edit a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body UpdateBlogRequest true "Fields to change"
// @Success 200 {object} envelope.Response[BlogView]
// @Failure 403 {object} envelope.Error
// @Failure 404 {object} envelope.Error
// @Router /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	blog, err := h.svc.Update(c.Request().Context(), userID, id, service.BlogPatch{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "blog updated", toBlogView(*blog))
}

// Delete godoc
// @Summary Delete a blog and its comments
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Error
// @Failure 404 {object} envelope.Error
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
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
	return respond[any](c, http.StatusOK, "blog deleted", nil)
}

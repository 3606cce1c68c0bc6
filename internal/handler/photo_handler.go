package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/service"
)

const maxPhotoSize = 10 << 20

// PhotoHandler serves photo galleries.
type PhotoHandler struct {
	svc service.PhotoService
}

// NewPhotoHandler creates a PhotoHandler.
func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a photo to my gallery
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} envelope.Response[model.Photo]
// @Failure 400 {object} envelope.Error
// @Failure 413 {object} envelope.Error
// @Router /photos [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxPhotoSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds "+strconv.Itoa(maxPhotoSize>>20)+"MB")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	photo, err := h.svc.Upload(c.Request().Context(), me, service.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Caption:     c.FormValue("caption"),
		Body:        f,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "photo uploaded", photo)
}

// ListMine godoc
// @Summary List my photos
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope.Response[[]model.Photo]
// @Router /photos [get]
func (h *PhotoHandler) ListMine(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	photos, err := h.svc.List(c.Request().Context(), me)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "photos fetched", photos)
}

// ListByUser godoc
// @Summary List a user's photos
// @Tags photos
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} envelope.Response[[]model.Photo]
// @Failure 404 {object} envelope.Error
// @Router /users/{id}/photos [get]
func (h *PhotoHandler) ListByUser(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	photos, err := h.svc.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "photos fetched", photos)
}

// Content godoc
// @Summary Download photo bytes
// @Tags photos
// @Produce octet-stream
// @Param id path string true "Photo ID"
// @Success 200 {file} binary
// @Failure 404 {object} envelope.Error
// @Router /photos/{id}/content [get]
func (h *PhotoHandler) Content(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	photo, body, err := h.svc.Open(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer body.Close()

	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(photo.Size, 10))
	c.Response().Header().Set(echo.HeaderContentDisposition, "inline; filename="+strconv.Quote(photo.FileName))
	return c.Stream(http.StatusOK, photo.ContentType, io.LimitReader(body, photo.Size))
}

// Delete godoc
// @Summary Delete a photo
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Error
// @Failure 404 {object} envelope.Error
// @Router /photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), me, id); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "photo deleted", nil)
}

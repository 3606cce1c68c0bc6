package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"blogsphere/internal/logger"
	"blogsphere/internal/service"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingPeriod   = 30 * time.Second
)

// NotificationHandler serves the notification inbox and its live stream.
type NotificationHandler struct {
	svc      service.NotificationService
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // authenticated by bearer token, not cookies
			},
		},
	}
}

// List godoc
// @Summary List my notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope.Response[[]model.Notification]
// @Failure 401 {object} envelope.Error
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.List(c.Request().Context(), me, 0)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "notifications fetched", items)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Error
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(c.Request().Context(), id, me); err != nil {
		return err
	}
	return respond[any](c, http.StatusOK, "notification marked as read", nil)
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// MarkAllRead godoc
// @Summary Mark all my notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope.Response[MarkAllReadResponse]
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}
	n, err := h.svc.MarkAllRead(c.Request().Context(), me)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "notifications marked as read", MarkAllReadResponse{Updated: n})
}

// Stream godoc
// @Summary Live notifications over WebSocket
// @Description Each new notification for the caller is sent as a JSON text frame.
// @Tags notifications
// @Security BearerAuth
// @Success 101
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	me, err := currentUserID(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return nil
	}
	defer conn.Close()

	events, cancel := h.svc.Subscribe(me)
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	h.log.Debug("notification stream opened", "user", me)
	defer h.log.Debug("notification stream closed", "user", me)

	ctx := c.Request().Context()
	for {
		select {
		case n, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(n); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteTimeout)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

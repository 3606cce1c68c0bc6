package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// WatchNotifications opens the live notification stream and calls fn for
// each notification until ctx is done or the server closes the stream.
// A rejected handshake is treated like any other 401.
func (c *Client) WatchNotifications(ctx context.Context, fn func(Notification)) error {
	wsURL, err := websocketURL(c.baseURL + "/notifications/stream")
	if err != nil {
		return err
	}

	ctx, span := c.startSpan(ctx, http.MethodGet, "/notifications/stream")
	defer span.End()

	header := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
			apiErr := decodeError(resp)
			if resp.StatusCode == http.StatusUnauthorized {
				c.expire.expire()
			}
			recordError(span, apiErr)
			return apiErr
		}
		recordError(span, err)
		return err
	}
	defer conn.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	c.log.Debug("notification stream connected", "url", wsURL)
	for {
		var n Notification
		if err := conn.ReadJSON(&n); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			recordError(span, err)
			return fmt.Errorf("read notification: %w", err)
		}
		fn(n)
	}
}

func websocketURL(httpURL string) (string, error) {
	switch {
	case strings.HasPrefix(httpURL, "https://"):
		return "wss://" + strings.TrimPrefix(httpURL, "https://"), nil
	case strings.HasPrefix(httpURL, "http://"):
		return "ws://" + strings.TrimPrefix(httpURL, "http://"), nil
	default:
		return "", fmt.Errorf("unsupported base URL %q", httpURL)
	}
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsphere/internal/envelope"
	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
)

// ErrorHandler renders every error as the failure envelope. Echo errors keep
// their status; domain errors go through MapErrorToHTTP.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toEnvelope(err)
		if body.StatusCode >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"err", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.StatusCode)
		} else {
			writeErr = c.JSON(body.StatusCode, body)
		}
		if writeErr != nil {
			log.Warn("write error response", "err", writeErr)
		}
	}
}

func toEnvelope(err error) envelope.Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		case nil:
		default:
			msg = fmt.Sprint(m)
		}
		return envelope.Fail(he.Code, msg, "")
	}
	return apperrors.MapErrorToHTTP(err).ToErrorResponse()
}

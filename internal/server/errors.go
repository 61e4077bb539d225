// internal/server/errors.go
package server

import (
	"errors"
	"net/http"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"

	"github.com/tamzrod/jointstream/internal/link"
	"github.com/tamzrod/jointstream/internal/sampler"
)

// statusCode maps domain errors returned by handlers to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, sampler.ErrIntervalTooShort):
		return http.StatusBadRequest
	case errors.Is(err, sampler.ErrTooManySubscribers),
		errors.Is(err, sampler.ErrRegistryClosed),
		errors.Is(err, link.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders {success:false,message} for any error a handler returns.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusCode(err)
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(he.Code)
		}
	}

	if code >= http.StatusInternalServerError {
		level.Error(s.logger).Log("msg", "HTTP request error", "path", c.Path(), "err", err)
	} else {
		level.Debug(s.logger).Log("msg", "HTTP request rejected", "path", c.Path(), "code", code, "err", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, ErrResponse{Success: false, Message: msg})
}

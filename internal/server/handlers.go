// internal/server/handlers.go
package server

import (
	"errors"
	"net/http"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"

	"github.com/tamzrod/jointstream/internal/link"
	"github.com/tamzrod/jointstream/internal/status"
)

// health (GET /health) reports link state. Pure read.
func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, status.NewHealth(s.deps.Link.State(), s.now()))
}

// readData (GET /read-data) runs one cycle outside any subscriber's timer.
// A failed cycle is a normal answer with success=false.
func (s *Server) readData(c echo.Context) error {
	m, err := s.deps.Sampler.SampleOnce(c.Request().Context())
	if err != nil {
		level.Warn(s.logger).Log("msg", "on-demand read failed", "kind", link.Kind(err), "err", err)
		return c.JSON(http.StatusOK, ReadResponse{Success: false, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, ReadResponse{Success: true, Data: &m})
}

// reconnect (POST /reconnect) dials the device regardless of the attempt cap.
func (s *Server) reconnect(c echo.Context) error {
	err := s.deps.Link.Connect(c.Request().Context())
	if errors.Is(err, link.ErrClosed) {
		return err
	}

	snap := status.FromTransition(link.Transition{State: s.deps.Link.State(), Err: err}, s.deps.Link.MaxAttempts())
	level.Info(s.logger).Log("msg", "manual reconnect", "connected", snap.Connected, "err", err)
	return c.JSON(http.StatusOK, ReconnectResponse{Success: err == nil, Status: snap})
}

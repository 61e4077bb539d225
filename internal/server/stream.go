// internal/server/stream.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"

	"github.com/tamzrod/jointstream/internal/joint"
)

// stream (GET /stream?interval_ms=N) attaches one subscriber and pushes
// server-sent events until the client goes away or the server shuts down.
//
// Events:
//
//	connectionStatus  status.Snapshot, once on attach and on every link transition
//	robotData         joint.Measurement, once per successful cycle
func (s *Server) stream(c echo.Context) error {
	interval, err := s.parseInterval(c.QueryParam("interval_ms"))
	if err != nil {
		return err
	}

	data := make(chan joint.Measurement, StreamBuffer)
	var dropped uint64
	deliver := func(m joint.Measurement) {
		select {
		case data <- m:
		default:
			dropped++
		}
	}

	statusID, statusCh := s.deps.Status.Subscribe()
	defer s.deps.Status.Unsubscribe(statusID)

	subID, err := s.deps.Subscriptions.Attach(interval, deliver)
	if err != nil {
		return err
	}
	logger := log.With(s.logger, "subscriber", subID)
	defer func() {
		// After Detach returns nothing touches data or dropped.
		if err := s.deps.Subscriptions.Detach(subID); err != nil {
			level.Debug(logger).Log("msg", "detach", "err", err)
		}
		level.Info(logger).Log("msg", "stream closed", "dropped", dropped)
	}()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, EventConnectionStatus, s.deps.Status.Last()); err != nil {
		return nil
	}
	level.Info(logger).Log("msg", "stream opened", "interval", interval, "remote", c.RealIP())

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case snap, ok := <-statusCh:
			if !ok {
				return nil
			}
			if err := writeEvent(w, EventConnectionStatus, snap); err != nil {
				return nil
			}
		case m := <-data:
			if err := writeEvent(w, EventRobotData, m); err != nil {
				return nil
			}
		}
	}
}

func (s *Server) parseInterval(raw string) (time.Duration, error) {
	if raw == "" {
		return s.interval, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("interval_ms must be a positive integer, got %q", raw))
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func writeEvent(w *echo.Response, event string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}

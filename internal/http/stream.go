package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/events"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	streamBuffer    = 32
	streamKeepAlive = 15 * time.Second
)

// Events — поток событий кошелька (Server-Sent Events)
// @Summary     Event stream
// @Tags        events
// @Produce     text/event-stream
// @Param       platform query string false "ios | android"
// @Success     200 {object} events.Event
// @Failure     404 {object} APIError
// @Router      /events [get]
func Events(em *events.Emitter, keepAlive time.Duration) echo.HandlerFunc {
	if keepAlive <= 0 {
		keepAlive = streamKeepAlive
	}
	return func(c echo.Context) error {
		var only models.Platform
		if q := c.QueryParam("platform"); q != "" {
			p, ok := models.ParsePlatform(q)
			if !ok {
				return writeError(c, wsvc.ErrUnknownPlatform)
			}
			only = p
		}

		ch, cancel := em.Subscribe(streamBuffer)
		defer cancel()

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set(echo.HeaderCacheControl, "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		w.Flush()

		tick := time.NewTicker(keepAlive)
		defer tick.Stop()
		ctx := c.Request().Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return nil
				}
				w.Flush()
			case ev, ok := <-ch:
				if !ok {
					return nil
				}
				// platform-less events (onChange, onLoad) reach every subscriber
				if only != "" && ev.Platform != "" && ev.Platform != only {
					continue
				}
				if err := writeEvent(w, ev); err != nil {
					slog.Debug("sse write", "err", err)
					return nil
				}
				w.Flush()
			}
		}
	}
}

func writeEvent(w *echo.Response, ev events.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Name, data)
	return err
}

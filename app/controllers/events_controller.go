package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/campuscare-app/CampusCare/internal/pkg/realtime"
)

const heartbeatInterval = 25 * time.Second

// HandleEvents streams change events for one watched table as server-sent
// events. Clients are expected to re-fetch the collection when an event
// arrives; the payload only says what changed, not how.
func HandleEvents(c *fiber.Ctx) error {
	table := c.Query("table", realtime.TableReports)
	if !realtime.IsWatchable(table) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown table: "+table)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(context.Background())
	events, stop := realtime.Subscribe(ctx, table)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stop()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

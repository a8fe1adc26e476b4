package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamEvents relays change events as Server-Sent Events until the client
// goes away or the broadcaster closes.
func (h *Handler) streamEvents(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	slog.Debug("event stream opened", "subscriber", id)
	defer slog.Debug("event stream closed", "subscriber", id)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent(string(e.Type), e)
			c.Writer.Flush()
		}
	}
}

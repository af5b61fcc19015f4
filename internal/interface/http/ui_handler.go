package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/infra/ui"
)

type eventsResponse struct {
	Events []ui.Event `json:"events"`
	Last   uint64     `json:"last"`
}

// Events returns UI side effects newer than ?since.
func (h *Handler) Events(c *gin.Context) {
	var since uint64
	if raw := c.Query("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "since must be a non-negative integer", err))
			return
		}
		since = parsed
	}
	events, last := h.feed.Since(since)
	c.JSON(http.StatusOK, eventsResponse{Events: events, Last: last})
}

func (h *Handler) Loading(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Loading())
}

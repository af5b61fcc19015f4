package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/domain/health"
)

func (h *Handler) SubmitCheckin(c *gin.Context) {
	var req health.CheckinRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.healthSvc.SubmitCheckin(c.Request.Context(), req)
	respond(c, res, err)
}

func (h *Handler) TodayCheckin(c *gin.Context) {
	res, err := h.healthSvc.TodayCheckin(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) CheckinHistory(c *gin.Context) {
	page, size, ok := pageQuery(c)
	if !ok {
		return
	}
	res, err := h.healthSvc.CheckinHistory(c.Request.Context(), page, size)
	respond(c, res, err)
}

func (h *Handler) HealthScore(c *gin.Context) {
	res, err := h.healthSvc.Score(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) Streak(c *gin.Context) {
	res, err := h.healthSvc.Streak(c.Request.Context())
	respond(c, res, err)
}

// CheckinStats proxies the raw stats body for a period (week by default).
func (h *Handler) CheckinStats(c *gin.Context) {
	res, err := h.healthSvc.CheckinStats(c.Request.Context(), c.Query("period"))
	respond(c, res, err)
}

func (h *Handler) Trend(c *gin.Context) {
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}
	res, err := h.healthSvc.Trend(c.Request.Context(), days)
	respond(c, res, err)
}

func (h *Handler) Statistics(c *gin.Context) {
	res, err := h.healthSvc.Stats(c.Request.Context())
	respond(c, res, err)
}

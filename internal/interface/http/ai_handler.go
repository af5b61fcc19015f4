package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/domain/ai"
)

// Consult forwards a question to the AI consultation endpoint.
func (h *Handler) Consult(c *gin.Context) {
	var req ai.ConsultRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.aiSvc.Consult(c.Request.Context(), req)
	respond(c, res, err)
}

func (h *Handler) ConsultHistory(c *gin.Context) {
	page, size, ok := pageQuery(c)
	if !ok {
		return
	}
	res, err := h.aiSvc.History(c.Request.Context(), page, size)
	respond(c, res, err)
}

func (h *Handler) QuickQuestions(c *gin.Context) {
	res, err := h.aiSvc.QuickQuestions(c.Request.Context())
	respond(c, res, err)
}

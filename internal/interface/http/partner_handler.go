package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/domain/partner"
	"github.com/yanqian/pairhealth/pkg/coerce"
)

type bindRequest struct {
	InviteCode string `json:"inviteCode"`
}

type respondRequest struct {
	RelationshipID coerce.ID `json:"relationshipId"`
	Accept         bool      `json:"accept"`
}

type confirmRequest struct {
	RecordID coerce.ID `json:"recordId"`
	Accept   bool      `json:"accept"`
}

func (h *Handler) GenerateInviteCode(c *gin.Context) {
	res, err := h.partnerSvc.GenerateInviteCode(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) BindPartner(c *gin.Context) {
	var req bindRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.partnerSvc.Bind(c.Request.Context(), req.InviteCode)
	respond(c, res, err)
}

func (h *Handler) RelationshipStatus(c *gin.Context) {
	res, err := h.partnerSvc.RelationshipStatus(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) RespondToBind(c *gin.Context) {
	var req respondRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.partnerSvc.RespondToBind(c.Request.Context(), req.RelationshipID, req.Accept)
	respond(c, res, err)
}

func (h *Handler) UnbindPartner(c *gin.Context) {
	res, err := h.partnerSvc.Unbind(c.Request.Context(), coerce.ID(c.Param("id")))
	respond(c, res, err)
}

func (h *Handler) PartnerCheckinStatus(c *gin.Context) {
	res, err := h.partnerSvc.CheckinStatus(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) PartnerCheckinHistory(c *gin.Context) {
	page, size, ok := pageQuery(c)
	if !ok {
		return
	}
	res, err := h.partnerSvc.CheckinHistory(c.Request.Context(), page, size)
	respond(c, res, err)
}

func (h *Handler) RelationshipHealth(c *gin.Context) {
	res, err := h.partnerSvc.RelationshipHealth(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) CreateContract(c *gin.Context) {
	var req partner.ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.partnerSvc.CreateContract(c.Request.Context(), req)
	respond(c, res, err)
}

func (h *Handler) ListContracts(c *gin.Context) {
	res, err := h.partnerSvc.ListContracts(c.Request.Context(), c.Query("status"))
	respond(c, res, err)
}

// CompleteContract accepts an optional JSON object body.
func (h *Handler) CompleteContract(c *gin.Context) {
	var body coerce.Object
	if c.Request.ContentLength != 0 && !bindJSON(c, &body) {
		return
	}
	res, err := h.partnerSvc.CompleteContract(c.Request.Context(), coerce.ID(c.Param("id")), body)
	respond(c, res, err)
}

func (h *Handler) ConfirmContract(c *gin.Context) {
	var req confirmRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.partnerSvc.ConfirmContract(c.Request.Context(), coerce.ID(c.Param("id")), req.RecordID, req.Accept)
	respond(c, res, err)
}

func (h *Handler) CancelContract(c *gin.Context) {
	res, err := h.partnerSvc.CancelContract(c.Request.Context(), coerce.ID(c.Param("id")))
	respond(c, res, err)
}

func (h *Handler) Points(c *gin.Context) {
	res, err := h.partnerSvc.Points(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) PointsRecords(c *gin.Context) {
	page, size, ok := pageQuery(c)
	if !ok {
		return
	}
	res, err := h.partnerSvc.PointsRecords(c.Request.Context(), page, size)
	respond(c, res, err)
}

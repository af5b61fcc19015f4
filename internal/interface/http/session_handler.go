package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/domain/user"
	"github.com/yanqian/pairhealth/internal/infra/session"
	"github.com/yanqian/pairhealth/pkg/coerce"
)

type sessionResponse struct {
	LoggedIn bool           `json:"loggedIn"`
	Claims   session.Claims `json:"claims"`
	Profile  coerce.Object  `json:"profile"`
}

type wechatLoginRequest struct {
	Code string `json:"code"`
}

type smsRequest struct {
	Phone string `json:"phone"`
}

// Session describes the locally stored login without calling the backend.
func (h *Handler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	out := sessionResponse{LoggedIn: h.session.LoggedIn(ctx)}
	if out.LoggedIn {
		claims, err := h.session.Claims(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		out.Claims = claims
	}
	profile, _, err := h.session.Profile(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	out.Profile = profile
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.userSvc.Logout(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) WechatLogin(c *gin.Context) {
	var req wechatLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.userSvc.WechatLogin(c.Request.Context(), req.Code)
	respond(c, res, err)
}

func (h *Handler) PhoneLogin(c *gin.Context) {
	var req user.PhoneLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.userSvc.PhoneLogin(c.Request.Context(), req)
	respond(c, res, err)
}

func (h *Handler) SendSMSCode(c *gin.Context) {
	var req smsRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.userSvc.SendSMSCode(c.Request.Context(), req.Phone)
	respond(c, res, err)
}

func (h *Handler) Profile(c *gin.Context) {
	res, err := h.userSvc.Profile(c.Request.Context())
	respond(c, res, err)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req user.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.userSvc.UpdateProfile(c.Request.Context(), req)
	respond(c, res, err)
}

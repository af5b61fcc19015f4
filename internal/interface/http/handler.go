package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/domain/ai"
	"github.com/yanqian/pairhealth/internal/domain/health"
	"github.com/yanqian/pairhealth/internal/domain/partner"
	"github.com/yanqian/pairhealth/internal/domain/user"
	"github.com/yanqian/pairhealth/internal/infra/session"
	"github.com/yanqian/pairhealth/internal/infra/ui"
	"github.com/yanqian/pairhealth/pkg/coerce"
)

// SessionView is the read side of the session manager.
type SessionView interface {
	LoggedIn(ctx context.Context) bool
	Claims(ctx context.Context) (session.Claims, error)
	Profile(ctx context.Context) (coerce.Object, bool, error)
}

// EventFeed is the UI side-effect feed.
type EventFeed interface {
	Since(seq uint64) ([]ui.Event, uint64)
	Loading() ui.LoadingState
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	aiSvc      ai.Service
	healthSvc  health.Service
	partnerSvc partner.Service
	userSvc    user.Service
	session    SessionView
	feed       EventFeed
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(aiSvc ai.Service, healthSvc health.Service, partnerSvc partner.Service, userSvc user.Service, sessionView SessionView, feed EventFeed, logger *slog.Logger) *Handler {
	return &Handler{
		aiSvc:      aiSvc,
		healthSvc:  healthSvc,
		partnerSvc: partnerSvc,
		userSvc:    userSvc,
		session:    sessionView,
		feed:       feed,
		logger:     logger.With("component", "http.handler"),
	}
}

// respond writes v or routes err through the error middleware.
func respond(c *gin.Context, v any, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return false
	}
	return true
}

// queryInt reads a non-negative integer query parameter; missing means 0.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", key+" must be a non-negative integer", err))
		return 0, false
	}
	return v, true
}

func pageQuery(c *gin.Context) (page, size int, ok bool) {
	if page, ok = queryInt(c, "page"); !ok {
		return 0, 0, false
	}
	if size, ok = queryInt(c, "size"); !ok {
		return 0, 0, false
	}
	return page, size, true
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api/v1")
	{
		aiGroup := api.Group("/ai")
		aiGroup.POST("/consult", handler.Consult)
		aiGroup.GET("/history", handler.ConsultHistory)
		aiGroup.GET("/questions", handler.QuickQuestions)

		healthGroup := api.Group("/health")
		healthGroup.POST("/checkin", handler.SubmitCheckin)
		healthGroup.GET("/today", handler.TodayCheckin)
		healthGroup.GET("/checkins", handler.CheckinHistory)
		healthGroup.GET("/score", handler.HealthScore)
		healthGroup.GET("/streak", handler.Streak)
		healthGroup.GET("/stats", handler.CheckinStats)
		healthGroup.GET("/trend", handler.Trend)
		healthGroup.GET("/statistics", handler.Statistics)

		partnerGroup := api.Group("/partner")
		partnerGroup.POST("/invite-code", handler.GenerateInviteCode)
		partnerGroup.POST("/bind", handler.BindPartner)
		partnerGroup.GET("/status", handler.RelationshipStatus)
		partnerGroup.POST("/respond", handler.RespondToBind)
		partnerGroup.POST("/unbind/:id", handler.UnbindPartner)
		partnerGroup.GET("/checkin/today", handler.PartnerCheckinStatus)
		partnerGroup.GET("/checkin/history", handler.PartnerCheckinHistory)
		partnerGroup.GET("/health", handler.RelationshipHealth)
		partnerGroup.POST("/contracts", handler.CreateContract)
		partnerGroup.GET("/contracts", handler.ListContracts)
		partnerGroup.POST("/contracts/:id/complete", handler.CompleteContract)
		partnerGroup.POST("/contracts/:id/confirm", handler.ConfirmContract)
		partnerGroup.POST("/contracts/:id/cancel", handler.CancelContract)
		partnerGroup.GET("/points", handler.Points)
		partnerGroup.GET("/points/records", handler.PointsRecords)

		api.GET("/session", handler.Session)
		api.DELETE("/session", handler.Logout)
		api.POST("/session/wechat", handler.WechatLogin)
		api.POST("/session/phone", handler.PhoneLogin)
		api.POST("/session/sms", handler.SendSMSCode)
		api.GET("/user", handler.Profile)
		api.PUT("/user", handler.UpdateProfile)

		api.GET("/ui/events", handler.Events)
		api.GET("/ui/loading", handler.Loading)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

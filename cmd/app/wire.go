//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/pairhealth/internal/bootstrap"
	"github.com/yanqian/pairhealth/internal/domain/ai"
	"github.com/yanqian/pairhealth/internal/domain/health"
	"github.com/yanqian/pairhealth/internal/domain/partner"
	"github.com/yanqian/pairhealth/internal/domain/user"
	"github.com/yanqian/pairhealth/internal/infra/config"
	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/internal/infra/session"
	"github.com/yanqian/pairhealth/internal/infra/ui"
	httpiface "github.com/yanqian/pairhealth/internal/interface/http"
	"github.com/yanqian/pairhealth/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRequestConfig,
		provideHTTPTransport,
		provideAIConfig,
		provideUserConfig,
		provideFeed,
		provideSessionStore,
		session.NewManager,
		request.NewClient,
		ai.NewService,
		health.NewService,
		partner.NewService,
		user.NewService,
		wire.Bind(new(request.Transport), new(*request.HTTPTransport)),
		wire.Bind(new(request.TokenSource), new(*session.Manager)),
		wire.Bind(new(request.SessionClearer), new(*session.Manager)),
		wire.Bind(new(request.Surface), new(*ui.Feed)),
		wire.Bind(new(request.Requester), new(*request.Client)),
		wire.Bind(new(user.SessionStore), new(*session.Manager)),
		wire.Bind(new(user.Navigator), new(*ui.Feed)),
		wire.Bind(new(httpiface.SessionView), new(*session.Manager)),
		wire.Bind(new(httpiface.EventFeed), new(*ui.Feed)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

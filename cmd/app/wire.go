//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/luvit/moodfit/internal/bootstrap"
	"github.com/luvit/moodfit/internal/domain/recommend"
	"github.com/luvit/moodfit/internal/infra/config"
	httpiface "github.com/luvit/moodfit/internal/interface/http"
	"github.com/luvit/moodfit/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideOpenAIClient,
		provideGeminiClient,
		provideProviderClients,
		provideImageDelays,
		provideCatalogRepository,
		provideCacheStore,
		provideCompressor,
		provideAssetStore,
		provideResultCache,
		provideAccessService,
		recommend.NewEngine,
		recommend.NewGateway,
		recommend.NewService,
		wire.Bind(new(recommend.AIGateway), new(*recommend.Gateway)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

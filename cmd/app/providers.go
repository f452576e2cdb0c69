package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/luvit/moodfit/internal/domain/access"
	"github.com/luvit/moodfit/internal/domain/profile"
	"github.com/luvit/moodfit/internal/domain/recommend"
	"github.com/luvit/moodfit/internal/infra/assetstore"
	"github.com/luvit/moodfit/internal/infra/catalogrepo"
	"github.com/luvit/moodfit/internal/infra/config"
	"github.com/luvit/moodfit/internal/infra/imaging"
	"github.com/luvit/moodfit/internal/infra/llm/gemini"
	"github.com/luvit/moodfit/internal/infra/llm/openai"
	"github.com/luvit/moodfit/internal/infra/recstore"
)

const latestCacheKey = "recommendation:latest"

func provideOpenAIClient(cfg *config.Config, logger *slog.Logger) *openai.Client {
	return openai.NewClient(openai.Config{
		APIKey:       cfg.OpenAI.APIKey,
		BaseURL:      cfg.OpenAI.BaseURL,
		ModelGeneral: cfg.OpenAI.ModelGeneral,
		ModelStyle:   cfg.OpenAI.ModelStyle,
		ImageModel:   cfg.OpenAI.ImageModel,
		Temperature:  cfg.OpenAI.Temperature,
	}, logger)
}

func provideGeminiClient(cfg *config.Config, logger *slog.Logger) *gemini.Client {
	return gemini.NewClient(gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		BaseURL:    cfg.Gemini.BaseURL,
		TextModel:  cfg.Gemini.TextModel,
		ImageModel: cfg.Gemini.ImageModel,
	}, logger)
}

func provideProviderClients(openaiClient *openai.Client, geminiClient *gemini.Client) map[profile.Provider]recommend.ProviderClient {
	return map[profile.Provider]recommend.ProviderClient{
		profile.ProviderOpenAI: openaiClient,
		profile.ProviderGemini: geminiClient,
	}
}

func provideImageDelays(cfg *config.Config) map[profile.Provider]time.Duration {
	delays := map[profile.Provider]time.Duration{}
	if cfg.Gemini.ImageDelay > 0 {
		delays[profile.ProviderGemini] = cfg.Gemini.ImageDelay
	}
	return delays
}

func provideCatalogRepository(cfg *config.Config, logger *slog.Logger) recommend.CatalogRepository {
	fallback := catalogrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Catalog.PostgresDSN)
	if dsn == "" {
		logger.Info("catalog postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Catalog.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("catalog postgres repository enabled")
	return catalogrepo.NewPostgresRepository(pool)
}

func provideCacheStore(cfg *config.Config, logger *slog.Logger) recommend.CacheStore {
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return recstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return recstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey cache store enabled", "addr", cfg.Cache.Valkey.Addr)
			return recstore.NewValkeyStore(client, latestCacheKey, 0)
		}
	}
	return recstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideCompressor(cfg *config.Config) recommend.Compressor {
	return imaging.NewCompressor(cfg.Cache.MaxImageWidth, cfg.Cache.JPEGQuality)
}

func provideAssetStore(cfg *config.Config, logger *slog.Logger) recommend.AssetStore {
	a := cfg.Assets
	if a.Endpoint == "" || a.AccessKey == "" || a.SecretKey == "" || a.Bucket == "" {
		logger.Info("asset storage not configured, keeping images inline")
		return nil
	}
	store, err := assetstore.NewS3Store(a.Endpoint, a.AccessKey, a.SecretKey, a.Bucket, a.Region, a.PublicURL, logger)
	if err != nil {
		logger.Error("failed to initialize asset store, keeping images inline", "error", err)
		return nil
	}
	return store
}

func provideResultCache(store recommend.CacheStore, compressor recommend.Compressor, assets recommend.AssetStore, logger *slog.Logger) recommend.ResultCache {
	return recommend.NewCache(store, compressor, assets, logger)
}

func provideAccessService(cfg *config.Config, logger *slog.Logger) access.Service {
	if !cfg.Access.Enabled() {
		logger.Info("login gate disabled")
		return nil
	}
	return access.NewService(access.Config{
		AdminPasscodeHash: cfg.Access.AdminPasscodeHash,
		GuestPasscodeHash: cfg.Access.GuestPasscodeHash,
		TokenSecret:       cfg.Access.TokenSecret,
		TokenTTL:          cfg.Access.TokenTTL,
	}, logger)
}

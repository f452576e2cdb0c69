package recommend

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/luvit/moodfit/internal/domain/profile"
)

// Origin identifies where a served recommendation came from.
const (
	OriginAI    = "ai"
	OriginLocal = "local"
	OriginCache = "cache"
)

// Outcome is a served recommendation plus provenance. Fallback is set when
// an AI request degraded to the local engine.
type Outcome struct {
	Origin   string `json:"origin"`
	Fallback bool   `json:"fallback,omitempty"`
	Result
}

// Service is the recommendation entry point consumed by the HTTP layer.
type Service interface {
	Recommend(ctx context.Context, p profile.Profile) (Outcome, error)
	Local(ctx context.Context, p profile.Profile) (Result, error)
	Latest(ctx context.Context, p profile.Profile) (Outcome, error)
	FridgeRecipe(ctx context.Context, ingredients string, p profile.Profile) (Recipe, error)
	GenerateImage(ctx context.Context, prompt string, aspect AspectRatio, provider profile.Provider) (string, error)
}

// AIGateway abstracts the provider gateway for testing.
type AIGateway interface {
	Fetch(ctx context.Context, p profile.Profile) (Result, error)
	FromIngredients(ctx context.Context, ingredients string, p profile.Profile) (Recipe, error)
	Image(ctx context.Context, prompt string, aspect AspectRatio, provider profile.Provider) (string, error)
}

// ResultCache abstracts the single-slot cache for testing.
type ResultCache interface {
	Save(ctx context.Context, result Result) error
	Load(ctx context.Context) (Result, bool, error)
}

type service struct {
	engine  *Engine
	gateway AIGateway
	catalog CatalogRepository
	cache   ResultCache
	logger  *slog.Logger

	// Sequence fencing makes the refresh race deterministic: a fetch
	// that finishes after a newer one has committed is not committed.
	mu           sync.Mutex
	nextSeq      uint64
	committedSeq uint64
	latest       *Result

	saveAsync func(Result)
}

// NewService wires the recommendation orchestrator.
func NewService(engine *Engine, gateway AIGateway, catalog CatalogRepository, cache ResultCache, logger *slog.Logger) Service {
	s := &service{
		engine:  engine,
		gateway: gateway,
		catalog: catalog,
		cache:   cache,
		logger:  logger.With("component", "recommend.service"),
	}
	s.saveAsync = s.spawnPersist
	return s
}

// Recommend serves an AI recommendation when the profile enables it,
// falling back to the local engine on any gateway failure.
func (s *service) Recommend(ctx context.Context, p profile.Profile) (Outcome, error) {
	p = p.Normalized()
	if !p.UseAI {
		result, err := s.Local(ctx, p)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Origin: OriginLocal, Result: result}, nil
	}

	seq := s.acquireSeq()
	result, err := s.gateway.Fetch(ctx, p)
	if err != nil {
		s.logger.Warn("ai generation failed, falling back to local engine", "provider", p.Provider, "error", err)
		local, localErr := s.Local(ctx, p)
		if localErr != nil {
			return Outcome{}, localErr
		}
		return Outcome{Origin: OriginLocal, Fallback: true, Result: local}, nil
	}

	s.commit(seq, result)
	return Outcome{Origin: OriginAI, Result: result}, nil
}

// Local computes a recommendation purely from the tagged catalog.
func (s *service) Local(ctx context.Context, p profile.Profile) (Result, error) {
	p = p.Normalized()
	cat, err := s.catalog.Catalog(ctx, p.Locale)
	if err != nil {
		return Result{}, err
	}
	return s.engine.SelectLocal(p, cat)
}

// Latest returns the most recently committed result, restoring from the
// cache slot on a cold start and degrading to the local engine when the
// slot is absent or corrupted.
func (s *service) Latest(ctx context.Context, p profile.Profile) (Outcome, error) {
	s.mu.Lock()
	if s.latest != nil {
		result := *s.latest
		s.mu.Unlock()
		return Outcome{Origin: OriginAI, Result: result}, nil
	}
	s.mu.Unlock()

	cached, found, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("cache load failed", "error", err)
	} else if found {
		s.mu.Lock()
		if s.latest == nil {
			s.latest = &cached
		}
		s.mu.Unlock()
		return Outcome{Origin: OriginCache, Result: cached}, nil
	}

	result, err := s.Local(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Origin: OriginLocal, Result: result}, nil
}

func (s *service) FridgeRecipe(ctx context.Context, ingredients string, p profile.Profile) (Recipe, error) {
	return s.gateway.FromIngredients(ctx, ingredients, p.Normalized())
}

func (s *service) GenerateImage(ctx context.Context, prompt string, aspect AspectRatio, provider profile.Provider) (string, error) {
	if aspect == "" {
		aspect = AspectSquare
	}
	return s.gateway.Image(ctx, prompt, aspect, provider)
}

func (s *service) acquireSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// commit publishes a result unless a newer fetch already did, then kicks
// off the detached cache write. The caller still receives its own result
// either way.
func (s *service) commit(seq uint64, result Result) {
	s.mu.Lock()
	if seq <= s.committedSeq {
		s.mu.Unlock()
		s.logger.Info("discarding stale recommendation", "seq", seq)
		return
	}
	s.committedSeq = seq
	snapshot := result
	s.latest = &snapshot
	s.mu.Unlock()

	s.saveAsync(result)
}

// spawnPersist writes the cache entry detached from the request: the UI
// state is already updated and a storage failure must not affect it.
func (s *service) spawnPersist(result Result) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.cache.Save(ctx, result); err != nil {
			s.logger.Warn("recommendation cache save failed", "error", err)
		}
	}()
}

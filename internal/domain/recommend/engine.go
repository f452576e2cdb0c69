package recommend

import (
	"math/rand/v2"
	"sort"

	"github.com/luvit/moodfit/internal/domain/profile"
	apperrors "github.com/luvit/moodfit/pkg/errors"
)

// Scoring weights are fixed design constants: body target dominates, mood
// next, season, then personality.
const (
	weightMood   = 3
	weightSeason = 2
	weightMBTI   = 1
	weightTarget = 4
)

// Engine ranks tagged catalog items against a profile snapshot.
type Engine struct {
	intn func(n int) int
}

// NewEngine builds the matching engine with the default RNG.
func NewEngine() *Engine {
	return &Engine{intn: rand.IntN}
}

// NewEngineWithRand builds an engine with an injected tie-break RNG.
func NewEngineWithRand(intn func(n int) int) *Engine {
	return &Engine{intn: intn}
}

// Score computes the weighted tag-membership score of an item against a
// profile. It is total: defined for any pair, absent tags contribute zero.
func Score(tags []string, p profile.Profile) int {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	score := 0
	if _, ok := set[string(p.Mood)]; ok {
		score += weightMood
	}
	if _, ok := set[string(p.Season)]; ok {
		score += weightSeason
	}
	if _, ok := set[string(p.MBTI)]; ok {
		score += weightMBTI
	}
	if _, ok := set[string(p.TargetArea)]; ok {
		score += weightTarget
	}
	return score
}

// SelectLocal assembles a recommendation purely from the catalog: the three
// content selections run independently, the quote is a keyed lookup.
func (e *Engine) SelectLocal(p profile.Profile, cat Catalog) (Result, error) {
	recipe, err := selectBest(e, cat.Recipes, p, func(r Recipe) []string { return r.Tags })
	if err != nil {
		return Result{}, err
	}
	outfit, err := selectBest(e, cat.Outfits, p, func(o Outfit) []string { return o.Tags })
	if err != nil {
		return Result{}, err
	}
	workout, err := selectBest(e, cat.Workouts, p, func(w Workout) []string { return w.Tags })
	if err != nil {
		return Result{}, err
	}

	return Result{
		Quote:   localQuote(p),
		Recipe:  recipe,
		Outfit:  outfit,
		Workout: workout,
	}, nil
}

// selectBest sorts descending by score (stable, original order kept on
// ties), keeps the top two, and picks uniformly between them so a manual
// refresh can surface variety without dropping below the runner-up score.
func selectBest[T any](e *Engine, items []T, p profile.Profile, tags func(T) []string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, apperrors.Wrap(apperrors.CodeEmptyCatalog, "catalog slice is empty", nil)
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Score(tags(sorted[i]), p) > Score(tags(sorted[j]), p)
	})

	if len(sorted) == 1 {
		return sorted[0], nil
	}
	return sorted[e.intn(2)], nil
}

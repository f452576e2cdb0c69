package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luvit/moodfit/internal/domain/profile"
	apperrors "github.com/luvit/moodfit/pkg/errors"
)

func scoringProfile() profile.Profile {
	return profile.Profile{
		MBTI:       profile.ENFP,
		Mood:       profile.MoodHappy,
		Season:     profile.SeasonSummer,
		TargetArea: profile.TargetWaist,
	}.Normalized()
}

func TestScoreSumsWeightedIndicators(t *testing.T) {
	p := scoringProfile()

	cases := []struct {
		name string
		tags []string
		want int
	}{
		{"no matching tags", []string{"comfort_food", "Winter"}, 0},
		{"mood only", []string{"Happy"}, 3},
		{"season only", []string{"Summer"}, 2},
		{"mbti only", []string{"ENFP"}, 1},
		{"target only", []string{"Waist"}, 4},
		{"all four", []string{"Happy", "Summer", "ENFP", "Waist"}, 10},
		{"duplicates count once", []string{"Happy", "Happy"}, 3},
		{"empty tags", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.tags, p)
			require.Equal(t, tc.want, got)
			require.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestScoreScenarioSalmonBeatsPumpkin(t *testing.T) {
	p := scoringProfile()

	salmon := []string{"Happy", "Energetic", "Summer", "Autumn", "ENFP", "healthy_fats"}
	pumpkin := []string{"Tired", "Anxious", "Winter", "comfort_food"}

	require.Equal(t, 6, Score(salmon, p))
	require.Equal(t, 0, Score(pumpkin, p))
	require.Greater(t, Score(salmon, p), Score(pumpkin, p))
}

func testCatalog() Catalog {
	return Catalog{
		Recipes: []Recipe{
			{ID: "r1", Tags: []string{"Happy", "Summer", "ENFP"}, Title: "Poke Bowl"},
			{ID: "r2", Tags: []string{"Tired", "Winter"}, Title: "Pumpkin Soup"},
			{ID: "r3", Tags: []string{"Happy"}, Title: "Berry Bowl"},
		},
		Outfits: []Outfit{
			{ID: "o1", Tags: []string{"Summer", "Waist"}, Title: "High-Rise"},
			{ID: "o2", Tags: []string{"Winter"}, Title: "Layering"},
		},
		Workouts: []Workout{
			{ID: "w1", Tags: []string{"Waist"}, Title: "Core Routine"},
			{ID: "w2", Tags: []string{"Legs"}, Title: "Leg Sculpt"},
		},
	}
}

func TestSelectLocalNeverPicksBelowRunnerUp(t *testing.T) {
	p := scoringProfile()
	cat := testCatalog()

	// r1 scores 6, r3 scores 3, r2 scores 0: both tie-break arms stay in
	// the top two.
	for _, pick := range []int{0, 1} {
		engine := NewEngineWithRand(func(int) int { return pick })
		result, err := engine.SelectLocal(p, cat)
		require.NoError(t, err)
		require.NotEqual(t, "r2", result.Recipe.ID)
	}
}

func TestSelectLocalSeededIsDeterministic(t *testing.T) {
	p := scoringProfile()
	cat := testCatalog()
	engine := NewEngineWithRand(func(int) int { return 0 })

	first, err := engine.SelectLocal(p, cat)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := engine.SelectLocal(p, cat)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSelectLocalObservesBothTopCandidates(t *testing.T) {
	p := scoringProfile()
	cat := testCatalog()
	engine := NewEngine()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		result, err := engine.SelectLocal(p, cat)
		require.NoError(t, err)
		seen[result.Recipe.ID] = true
	}
	require.True(t, seen["r1"], "top scorer never selected")
	require.True(t, seen["r3"], "runner-up never selected")
	require.False(t, seen["r2"], "selection dipped below the top two")
}

func TestSelectLocalSingleCandidateIsDeterministic(t *testing.T) {
	p := scoringProfile()
	cat := Catalog{
		Recipes:  []Recipe{{ID: "only", Tags: []string{"Happy"}}},
		Outfits:  []Outfit{{ID: "only", Tags: []string{"Summer"}}},
		Workouts: []Workout{{ID: "only", Tags: []string{"Waist"}}},
	}
	engine := NewEngineWithRand(func(int) int {
		t.Fatal("rng must not be consulted for a single candidate")
		return 0
	})

	result, err := engine.SelectLocal(p, cat)
	require.NoError(t, err)
	require.Equal(t, "only", result.Recipe.ID)
}

func TestSelectLocalEmptyCatalog(t *testing.T) {
	engine := NewEngine()
	_, err := engine.SelectLocal(scoringProfile(), Catalog{})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeEmptyCatalog))
}

func TestSelectLocalStableOrderOnTies(t *testing.T) {
	p := scoringProfile()
	cat := Catalog{
		Recipes: []Recipe{
			{ID: "first", Tags: []string{"irrelevant"}},
			{ID: "second", Tags: []string{"also_irrelevant"}},
			{ID: "third", Tags: []string{"still_irrelevant"}},
		},
		Outfits:  []Outfit{{ID: "o", Tags: []string{"x"}}},
		Workouts: []Workout{{ID: "w", Tags: []string{"x"}}},
	}

	// All scores tie at zero; original catalog order decides the top two.
	engine := NewEngineWithRand(func(int) int { return 0 })
	result, err := engine.SelectLocal(p, cat)
	require.NoError(t, err)
	require.Equal(t, "first", result.Recipe.ID)

	engine = NewEngineWithRand(func(int) int { return 1 })
	result, err = engine.SelectLocal(p, cat)
	require.NoError(t, err)
	require.Equal(t, "second", result.Recipe.ID)
}

func TestLocalQuoteLookupOrder(t *testing.T) {
	base := profile.Profile{Locale: profile.LocaleEN, Mood: profile.MoodCalm}

	p := base
	p.MBTI = profile.ENFP
	require.Equal(t, "Creativity is intelligence having fun.", localQuote(p).Text)

	p = base
	p.MBTI = profile.ISTP
	p.Mood = profile.MoodHappy
	require.Equal(t, "Keep your face always toward the sunshine.", localQuote(p).Text)

	p = base
	p.MBTI = profile.ISTP
	require.Equal(t, "Your only limit is your mind.", localQuote(p).Text)

	p.Locale = profile.LocaleKO
	require.Equal(t, "당신의 유일한 한계는 당신의 마음뿐입니다.", localQuote(p).Text)

	require.Equal(t, quoteAuthor, localQuote(p).Author)
}

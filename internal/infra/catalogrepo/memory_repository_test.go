package catalogrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luvit/moodfit/internal/domain/profile"
)

func TestMemoryRepositoryServesBothLocales(t *testing.T) {
	repo := NewMemoryRepository()

	en, err := repo.Catalog(context.Background(), profile.LocaleEN)
	require.NoError(t, err)
	require.NotEmpty(t, en.Recipes)
	require.NotEmpty(t, en.Outfits)
	require.NotEmpty(t, en.Workouts)
	require.Equal(t, "Citrus Salmon & Avocado Poke Bowl", en.Recipes[0].Title)

	ko, err := repo.Catalog(context.Background(), profile.LocaleKO)
	require.NoError(t, err)
	require.Equal(t, "시트러스 연어 & 아보카도 포케", ko.Recipes[0].Title)

	// Tags are locale-independent so scoring behaves identically.
	require.Equal(t, en.Recipes[0].Tags, ko.Recipes[0].Tags)
	require.Equal(t, en.Workouts[1].Tags, ko.Workouts[1].Tags)
}

func TestMemoryRepositoryUnknownLocaleFallsBackToEnglish(t *testing.T) {
	repo := NewMemoryRepository()

	cat, err := repo.Catalog(context.Background(), profile.Locale("fr"))
	require.NoError(t, err)
	require.Equal(t, "Citrus Salmon & Avocado Poke Bowl", cat.Recipes[0].Title)
}

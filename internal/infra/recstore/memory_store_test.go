package recstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSlotSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.LoadEntry(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.SaveEntry(ctx, []byte("first")))
	require.NoError(t, store.SaveEntry(ctx, []byte("second")))

	payload, found, err := store.LoadEntry(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("second"), payload, "slot must hold the most recent write only")

	require.NoError(t, store.DeleteEntry(ctx))
	_, found, err = store.LoadEntry(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("payload")
	require.NoError(t, store.SaveEntry(ctx, original))
	original[0] = 'X'

	loaded, _, err := store.LoadEntry(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), loaded)
}

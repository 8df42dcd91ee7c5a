package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovattry/quintle/internal/game"
	"github.com/ovattry/quintle/internal/store"
)

func Test_MemoryStore_round_trip(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	s := game.NewSession("crane")
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func Test_MemoryStore_missing_id(t *testing.T) {
	st := store.NewMemoryStore()
	_, err := st.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

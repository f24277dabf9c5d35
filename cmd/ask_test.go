package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
)

func newTestDeps(t *testing.T) *deps {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "lingua.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	orch := tutor.New(capability.Set{Dictionary: capability.DefaultStaticDictionary()}, nil)
	return &deps{store: s, tutor: orch}
}

func TestExchangeRecordsBothSides(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	turn, err := exchange(ctx, d, "anna", "vocabulary: Haus")
	require.NoError(t, err)
	assert.Equal(t, "Haus: house", turn.Reply)

	h, err := d.store.HistoryRepo().History(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "You: vocabulary: Haus", h[0].Message)
	assert.Equal(t, "Teacher: Haus: house", h[1].Message)
}

func TestExchangeRejectsBlankWithoutSaving(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	_, err := exchange(ctx, d, "anna", "   \t ")
	assert.ErrorIs(t, err, tutor.ErrEmptyMessage)

	h, err := d.store.HistoryRepo().History(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, h)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	state := []byte(`{"version":1}`)
	require.NoError(t, s.Save(ctx, Match{ID: "b", State: state, Turn: 3}))
	require.NoError(t, s.Save(ctx, Match{ID: "a", State: []byte(`{}`)}))

	// The store keeps its own copy.
	state[0] = 'X'

	m, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(m.State))
	assert.Equal(t, 3, m.Turn)
	assert.False(t, m.UpdatedAt.IsZero())

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, s.Save(ctx, Match{ID: "b", State: []byte(`{}`), Turn: 4, Over: true}))
	m, err = s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 4, m.Turn)
	assert.True(t, m.Over)
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrNotFound)

	require.NoError(t, s.Save(ctx, Match{ID: "x"}))
	require.NoError(t, s.Delete(ctx, "x"))
	_, err = s.Load(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRequiresID(t *testing.T) {
	assert.Error(t, NewMemory().Save(context.Background(), Match{}))
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemory()
	assert.ErrorIs(t, s.Save(ctx, Match{ID: "x"}), context.Canceled)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

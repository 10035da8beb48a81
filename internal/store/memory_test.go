package store

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/julekalender/internal/game"
	"github.com/robalobadob/julekalender/internal/words"
)

func newSession(now func() time.Time) *game.Session {
	return game.NewSession(game.Config{
		Words: words.New([]string{"kage"}, words.Seeded(1)),
		Now:   now,
	})
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(nil)

	_, err := st.Get(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, s))
	got, err := st.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, s.ID()))
	_, err = st.Get(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, st.Len())
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	t0 := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

	old := newSession(func() time.Time { return t0 })
	fresh := newSession(func() time.Time { return t0.Add(90 * time.Minute) })
	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, fresh))

	n := st.Sweep(t0.Add(2*time.Hour), time.Hour)

	assert.Equal(t, 1, n)
	_, err := st.Get(ctx, old.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID())
	assert.NoError(t, err)
}

func TestRunSweeper_StopsOnCancel(t *testing.T) {
	st := NewMemoryStore()
	t0 := time.Now().Add(-time.Hour)
	require.NoError(t, st.Save(context.Background(), newSession(func() time.Time { return t0 })))

	ctx, cancel := context.WithCancel(context.Background())
	var swept atomic.Int32
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, st, 5*time.Millisecond, time.Minute, func(n int) { swept.Add(int32(n)) })
		close(done)
	}()

	assert.Eventually(t, func() bool { return swept.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
	assert.Equal(t, 0, st.Len())
}

package tui

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreResize(t *testing.T) {
	t.Parallel()

	s := NewStore(10, 3)
	require.Equal(t, 10, s.Count())
	require.Equal(t, 3, s.Types())

	first, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, "Item 1", first.Title)
	require.Equal(t, 0, first.Type)

	fifth, _ := s.Get(4)
	require.Equal(t, 1, fifth.Type)

	s.Resize(5)
	require.Equal(t, 5, s.Count())
	kept, _ := s.Get(0)
	require.Equal(t, first.ID, kept.ID)
	_, ok = s.Get(7)
	require.False(t, ok)

	s.Resize(7)
	grown, ok := s.Get(6)
	require.True(t, ok)
	require.Equal(t, "Item 12", grown.Title)

	s.Resize(-3)
	require.Zero(t, s.Count())
}

func TestStoreTypesAtLeastOne(t *testing.T) {
	t.Parallel()

	s := NewStore(4, 0)
	require.Equal(t, 1, s.Types())
	for i := range 4 {
		item, _ := s.Get(i)
		require.Zero(t, item.Type)
	}
}

func TestStoreTouch(t *testing.T) {
	t.Parallel()

	s := NewStore(3, 1)
	_, seen := s.Changed(0)

	now := time.Now()
	require.True(t, s.Touch(1, now))
	require.False(t, s.Touch(10, now))

	item, _ := s.Get(1)
	require.Equal(t, 1, item.Hits)
	require.Equal(t, now, item.Updated)

	changed, next := s.Changed(seen)
	require.True(t, changed)
	changed, _ = s.Changed(next)
	require.False(t, changed)
}

func TestStoreFeed(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 1)
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Feed(ctx, time.Millisecond, rand.New(rand.NewPCG(1, 1)))
	}()

	require.Eventually(t, func() bool {
		hits := 0
		for i := range s.Count() {
			item, _ := s.Get(i)
			hits += item.Hits
		}
		return hits >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop")
	}
}

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/recycle/internal/csync"
	"github.com/google/uuid"
)

// Item is one entry of the demo collection.
type Item struct {
	ID      uuid.UUID
	Title   string
	Type    int
	Hits    int
	Updated time.Time
}

// Store holds the demo collection keyed by index. Item content may change
// from a background feed while the count only changes through [Store.Resize].
type Store struct {
	items *csync.VersionedMap[int, Item]
	types int
	next  int
}

// NewStore returns a store of n items spread over types visual types.
func NewStore(n, types int) *Store {
	s := &Store{
		items: csync.NewVersionedMap[int, Item](),
		types: max(types, 1),
	}
	s.Resize(n)
	return s
}

func (s *Store) newItem() Item {
	s.next++
	return Item{
		ID:    uuid.New(),
		Title: fmt.Sprintf("Item %d", s.next),
		Type:  (s.next - 1) % s.types,
	}
}

// Count returns the number of items.
func (s *Store) Count() int {
	return s.items.Len()
}

// Types returns the number of visual types items are spread over.
func (s *Store) Types() int {
	return s.types
}

func (s *Store) Get(index int) (Item, bool) {
	return s.items.Get(index)
}

// Resize grows or shrinks the collection to n items, keeping existing items
// at their index.
func (s *Store) Resize(n int) {
	n = max(n, 0)
	inner := make(map[int]Item, n)
	for i := range n {
		item, ok := s.items.Get(i)
		if !ok {
			item = s.newItem()
		}
		inner[i] = item
	}
	s.items.Reset(inner)
}

// Touch records a hit on the item at index.
func (s *Store) Touch(index int, now time.Time) bool {
	return s.items.Update(index, func(item Item) Item {
		item.Hits++
		item.Updated = now
		return item
	})
}

// Changed reports whether the store was written since version seen.
func (s *Store) Changed(seen uint64) (bool, uint64) {
	return s.items.Changed(seen)
}

// Feed touches a random item every interval until ctx is done.
func (s *Store) Feed(ctx context.Context, interval time.Duration, r *rand.Rand) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	slog.Debug("Live feed started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Live feed stopped")
			return
		case now := <-ticker.C:
			if n := s.Count(); n > 0 {
				s.Touch(r.IntN(n), now)
			}
		}
	}
}

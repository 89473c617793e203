package board

import (
	"reflect"
	"slices"
	"sync"

	"clarity-board/internal/model"
)

// Snapshot is an immutable view of the store at one version.
type Snapshot[P any] struct {
	Items   []model.Item[P]
	Version uint64
}

// Columns projects the snapshot onto the board.
func (s Snapshot[P]) Columns() []Column[P] { return ProjectAll(s.Items) }

// Listener is called after the store changes. It runs on the goroutine that
// made the change, outside the store lock.
type Listener[P any] func(Snapshot[P])

// Store owns the flat item collection. All writes go through one mutex so a
// multi-goroutine host still has a single writer.
type Store[P any] struct {
	mu      sync.Mutex
	items   []model.Item[P]
	version uint64

	subMu     sync.Mutex
	subs      map[int]Listener[P]
	nextSub   int
	published uint64
}

func NewStore[P any](items []model.Item[P]) *Store[P] {
	return &Store[P]{
		items: slices.Clone(items),
		subs:  map[int]Listener[P]{},
	}
}

// Items returns a copy of the current collection.
func (s *Store[P]) Items() []model.Item[P] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Store[P]) Snapshot() Snapshot[P] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[P]{Items: slices.Clone(s.items), Version: s.version}
}

func (s *Store[P]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn for change notifications. The returned func removes it.
func (s *Store[P]) Subscribe(fn Listener[P]) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Replace swaps in a whole new collection (used by resync). It reports whether
// anything changed; identical contents do not notify.
func (s *Store[P]) Replace(items []model.Item[P]) bool {
	snap, changed, _ := s.mutate(func(cur []model.Item[P]) ([]model.Item[P], bool, error) {
		if reflect.DeepEqual(cur, items) {
			return cur, false, nil
		}
		return slices.Clone(items), true, nil
	})
	if changed {
		s.publish(snap)
	}
	return changed
}

// Update applies fn atomically and notifies listeners when fn reports a change.
func (s *Store[P]) Update(fn func([]model.Item[P]) ([]model.Item[P], bool, error)) (bool, error) {
	snap, changed, err := s.mutate(fn)
	if changed {
		s.publish(snap)
	}
	return changed, err
}

// mutate runs fn under the store lock without notifying. Callers that hold
// their own locks publish afterwards so listeners never run under them.
func (s *Store[P]) mutate(fn func([]model.Item[P]) ([]model.Item[P], bool, error)) (Snapshot[P], bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed, err := fn(s.items)
	if err != nil || !changed {
		return Snapshot[P]{}, false, err
	}
	s.items = next
	s.version++
	return Snapshot[P]{Items: slices.Clone(next), Version: s.version}, true, nil
}

func (s *Store[P]) publish(snap Snapshot[P]) {
	s.subMu.Lock()
	if snap.Version <= s.published {
		// A newer version already went out from another goroutine.
		s.subMu.Unlock()
		return
	}
	s.published = snap.Version
	ls := make([]Listener[P], 0, len(s.subs))
	for _, fn := range s.subs {
		ls = append(ls, fn)
	}
	s.subMu.Unlock()

	for _, fn := range ls {
		fn(snap)
	}
}

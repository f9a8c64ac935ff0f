package store

// EventKind names which cache region changed.
type EventKind string

const (
	EventFolders   EventKind = "folders"
	EventNotes     EventKind = "notes"
	EventSynthesis EventKind = "synthesis"
	EventBusy      EventKind = "busy"
)

// Event is one change notification emitted after a cache mutation. The UI
// subscribes instead of reaching into the cache maps.
type Event struct {
	Kind     EventKind
	FolderID string
}

// Subscribe registers a change listener. The returned cancel function must be
// called to release the subscription. Slow subscribers drop events rather
// than block store operations.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// publish fans one event out to all subscribers without blocking. The read
// lock is held across the sends so a concurrent cancel cannot close a
// channel mid-delivery; the sends are non-blocking, so holding it is cheap.
// Callers must not hold s.mu.
func (s *Store) publish(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

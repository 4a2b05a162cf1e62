package service

import "sync"

const watchBuffer = 1

// WatchRegistry fans game change notifications out to subscribers. A slow
// subscriber misses intermediate notifications but always sees the latest.
type WatchRegistry struct {
	mu     sync.Mutex
	subs   map[string]map[chan struct{}]struct{}
	closed bool
}

func NewWatchRegistry() *WatchRegistry {
	return &WatchRegistry{
		subs: make(map[string]map[chan struct{}]struct{}),
	}
}

// Subscribe registers a watcher for gameID and returns its channel and an
// unsubscribe func that is safe to call more than once.
func (w *WatchRegistry) Subscribe(gameID string) (<-chan struct{}, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan struct{}, watchBuffer)
	if w.closed {
		close(ch)
		return ch, func() {}
	}

	if w.subs[gameID] == nil {
		w.subs[gameID] = make(map[chan struct{}]struct{})
	}
	w.subs[gameID][ch] = struct{}{}

	return ch, func() { w.unsubscribe(gameID, ch) }
}

func (w *WatchRegistry) unsubscribe(gameID string, ch chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	set := w.subs[gameID]
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(w.subs, gameID)
	}
}

// Notify signals every watcher of gameID without blocking
func (w *WatchRegistry) Notify(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.subs[gameID] {
		select {
		case ch <- struct{}{}:
		default:
			// Already pending
		}
	}
}

// RemoveGame closes all watchers of gameID
func (w *WatchRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.subs[gameID] {
		close(ch)
	}
	delete(w.subs, gameID)
}

func (w *WatchRegistry) Count(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs[gameID])
}

// Close closes every watcher; later subscriptions get a closed channel
func (w *WatchRegistry) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, set := range w.subs {
		for ch := range set {
			close(ch)
		}
	}
	w.subs = make(map[string]map[chan struct{}]struct{})
	w.closed = true
}

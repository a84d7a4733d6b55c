package shortcut

import "sync"

// TranslateShortcut is the signal emitted by the translate shortcut
const TranslateShortcut = "translate-shortcut"

// Source delivers named signals to subscribers
type Source interface {
	// Subscribe registers fn for the named signal and returns a function
	// removing the registration
	Subscribe(name string, fn func()) (unsubscribe func())
}

// Hub is an in-process Source. Handlers run in their own goroutines, so an
// emitter on the UI thread never blocks on a translation.
type Hub struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func()
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{handlers: make(map[string]map[int]func())}
}

// Subscribe implements Source
func (h *Hub) Subscribe(name string, fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	if h.handlers[name] == nil {
		h.handlers[name] = make(map[int]func())
	}
	h.handlers[name][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.handlers[name], id)
		})
	}
}

// Emit dispatches the signal to every current subscriber and returns how
// many were notified
func (h *Hub) Emit(name string) int {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.handlers[name]))
	for _, fn := range h.handlers[name] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		go fn()
	}
	return len(fns)
}

// Subscribers returns the number of handlers registered for name
func (h *Hub) Subscribers(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers[name])
}

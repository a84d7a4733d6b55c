package shortcut

import (
	"context"
	"log"
	"strings"
	"sync"

	"codeberg.org/snonux/neural/internal/clipboard"
	"codeberg.org/snonux/neural/internal/language"
)

// HandlerFunc receives clipboard text captured by the shortcut together with
// the pair the listener was bound with
type HandlerFunc func(ctx context.Context, text string, pair language.Pair)

// Listener reacts to TranslateShortcut by reading the clipboard once and
// handing the text to its handler
type Listener struct {
	source   Source
	accessor clipboard.Accessor
	handler  HandlerFunc
	logger   *log.Logger

	mu          sync.Mutex
	unsubscribe func()
	pair        language.Pair
}

// NewListener creates an unbound listener
func NewListener(source Source, accessor clipboard.Accessor, handler HandlerFunc, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.Default()
	}
	return &Listener{
		source:   source,
		accessor: accessor,
		handler:  handler,
		logger:   logger,
	}
}

// Bind subscribes for pair, dropping any previous subscription first. At
// most one subscription exists at any time. Once ctx is done Bind only
// releases.
func (l *Listener) Bind(ctx context.Context, pair language.Pair) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	l.pair = pair
	if ctx.Err() != nil {
		return
	}
	l.unsubscribe = l.source.Subscribe(TranslateShortcut, func() {
		l.handle(ctx, pair)
	})
}

// Pair returns the pair of the current subscription
func (l *Listener) Pair() language.Pair {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pair
}

// Bound reports whether the listener holds a subscription
func (l *Listener) Bound() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unsubscribe != nil
}

// Close releases the subscription
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

func (l *Listener) handle(ctx context.Context, pair language.Pair) {
	text, err := l.accessor.ReadText(ctx)
	if err != nil {
		l.logger.Printf("Failed to read clipboard for shortcut: %v", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	l.handler(ctx, text, pair)
}

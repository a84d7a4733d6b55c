package clipboard

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// DefaultPollInterval is how often the clipboard is read
const DefaultPollInterval = time.Second

// Watcher polls the clipboard and hands changed, non-blank text to a sink.
// The last seen text survives Stop/Start, so a value that did not change
// while the watcher was paused is not emitted again.
type Watcher struct {
	accessor Accessor
	sink     SinkFunc
	interval time.Duration
	logger   *log.Logger

	mu       sync.Mutex
	lastSeen string
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWatcher creates a stopped watcher
func NewWatcher(accessor Accessor, sink SinkFunc, interval time.Duration, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		accessor: accessor,
		sink:     sink,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling. Calling Start on a running watcher does nothing.
// Text is handed to the sink with ctx, which is not cancelled by Stop, so a
// translation that already started is allowed to finish.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	go w.loop(ctx, loopCtx, done)
}

// Stop ends polling and waits for the poll loop to exit. No poll runs after
// Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the watcher is polling
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// LastSeen returns the last clipboard text that was emitted
func (w *Watcher) LastSeen() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Watcher) loop(sinkCtx, loopCtx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
			if text, ok := w.poll(loopCtx); ok {
				go w.sink(sinkCtx, text)
			}
		}
	}
}

// poll reads the clipboard once and reports text that should be emitted
func (w *Watcher) poll(ctx context.Context) (string, bool) {
	text, err := w.accessor.ReadText(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Printf("Failed to check clipboard: %v", err)
		}
		return "", false
	}

	if strings.TrimSpace(text) == "" {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// A Stop that raced with this read wins
	if ctx.Err() != nil || text == w.lastSeen {
		return "", false
	}
	w.lastSeen = text
	return text, true
}

package orchestrator

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/neural/internal"
	"codeberg.org/snonux/neural/internal/clipboard"
	"codeberg.org/snonux/neural/internal/health"
	"codeberg.org/snonux/neural/internal/history"
	"codeberg.org/snonux/neural/internal/language"
	"codeberg.org/snonux/neural/internal/shortcut"
	"codeberg.org/snonux/neural/internal/translation"
)

// ErrorMessage replaces the result when a backend request fails
const ErrorMessage = "翻訳エラーが発生しました"

// DefaultIndicatorDuration is how long the cached and copied indicators stay on
const DefaultIndicatorDuration = 2 * time.Second

// DefaultHealthTimeout bounds a single health check
const DefaultHealthTimeout = 10 * time.Second

var (
	// ErrUnavailable is returned by TranslateInput when manual translation is
	// disabled: backend unhealthy, a request in flight or blank input
	ErrUnavailable = errors.New("translation is not available right now")

	// ErrStarted is returned by a second Start
	ErrStarted = errors.New("orchestrator already started")

	// ErrClosed is returned by Start after Close
	ErrClosed = errors.New("orchestrator is closed")
)

// HistoryAppender records successful translations
type HistoryAppender interface {
	Append(ctx context.Context, entry history.Entry) error
}

// Config wires the orchestrator to its collaborators. Backend and Clipboard
// are required, everything else is optional.
type Config struct {
	Backend   translation.Backend
	Clipboard clipboard.Accessor
	Shortcuts shortcut.Source
	History   HistoryAppender
	Logger    *log.Logger

	Pair          language.Pair
	AutoTranslate bool

	CacheSize         int
	PollInterval      time.Duration
	IndicatorDuration time.Duration
	HealthInterval    time.Duration
	HealthTimeout     time.Duration
}

// Orchestrator coordinates the cache, backend, clipboard watcher, shortcut
// listener and health monitor
type Orchestrator struct {
	backend   translation.Backend
	accessor  clipboard.Accessor
	history   HistoryAppender
	logger    *log.Logger
	cache     *translation.TranslationCache
	monitor   *health.Monitor
	watcher   *clipboard.Watcher
	listener  *shortcut.Listener
	indicator time.Duration
	healthInt time.Duration

	mu            sync.Mutex
	input         string
	result        string
	pair          language.Pair
	outcome       RequestState
	autoTranslate bool
	outstanding   int
	nextSeq       uint64
	appliedSeq    uint64
	cached        bool
	cachedGen     uint64
	cachedTimer   *time.Timer
	copied        bool
	copiedGen     uint64
	copiedTimer   *time.Timer
	subscribers   []func(Snapshot)

	ctx        context.Context
	cancel     context.CancelFunc
	closed     bool
	healthDone chan struct{}

	// autoMu orders watcher start/stop against the auto-translate flag
	autoMu sync.Mutex
}

// New creates an orchestrator. Nothing runs until Start.
func New(config Config) (*Orchestrator, error) {
	if config.Backend == nil {
		return nil, errors.New("translation backend is required")
	}
	if config.Clipboard == nil {
		return nil, errors.New("clipboard accessor is required")
	}
	if config.Pair == (language.Pair{}) {
		config.Pair = language.DefaultPair()
	}
	pair, err := config.Pair.Canonical()
	if err != nil {
		return nil, err
	}
	config.Pair = pair
	if config.CacheSize <= 0 {
		config.CacheSize = translation.DefaultCacheSize
	}
	if config.IndicatorDuration <= 0 {
		config.IndicatorDuration = DefaultIndicatorDuration
	}
	if config.HealthTimeout <= 0 {
		config.HealthTimeout = DefaultHealthTimeout
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	o := &Orchestrator{
		backend:       config.Backend,
		accessor:      config.Clipboard,
		history:       config.History,
		logger:        config.Logger,
		cache:         translation.NewTranslationCache(config.CacheSize),
		monitor:       health.NewMonitor(config.Backend, config.HealthTimeout, config.Logger),
		indicator:     config.IndicatorDuration,
		healthInt:     config.HealthInterval,
		pair:          config.Pair,
		autoTranslate: config.AutoTranslate,
	}
	o.watcher = clipboard.NewWatcher(config.Clipboard, o.SubmitInput, config.PollInterval, config.Logger)
	if config.Shortcuts != nil {
		o.listener = shortcut.NewListener(config.Shortcuts, config.Clipboard, o.translateShortcut, config.Logger)
	}
	o.monitor.SetOnChange(func(bool) { o.notify() })

	return o, nil
}

// Start checks backend health, binds the shortcut and starts the clipboard
// watcher when auto-translate is on. ctx ends everything Start begins.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if o.ctx != nil {
		o.mu.Unlock()
		return ErrStarted
	}
	o.ctx, o.cancel = context.WithCancel(ctx)
	runCtx := o.ctx
	o.mu.Unlock()

	o.monitor.Check(runCtx)

	o.rebind()
	o.applyAutoTranslate(func() {})
	if o.healthInt > 0 {
		done := make(chan struct{})
		o.mu.Lock()
		if o.closed {
			o.mu.Unlock()
			return nil
		}
		o.healthDone = done
		o.mu.Unlock()
		go func() {
			defer close(done)
			o.monitor.Run(runCtx, o.healthInt)
		}()
	}

	o.notify()
	return nil
}

// Close stops the watcher, the shortcut subscription, the health loop and
// the indicator timers
func (o *Orchestrator) Close() {
	o.mu.Lock()
	cancel, healthDone := o.cancel, o.healthDone
	o.healthDone = nil
	o.closed = true
	if o.cachedTimer != nil {
		o.cachedTimer.Stop()
	}
	if o.copiedTimer != nil {
		o.copiedTimer.Stop()
	}
	o.mu.Unlock()

	// Cancelled before unbinding, so a concurrent pair change cannot
	// subscribe again
	if cancel != nil {
		cancel()
	}
	o.autoMu.Lock()
	o.watcher.Stop()
	o.autoMu.Unlock()
	if o.listener != nil {
		o.listener.Close()
	}
	if healthDone != nil {
		<-healthDone
	}
}

// Subscribe registers fn to be called after every state change. fn runs on
// the goroutine that made the change and must not block.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, fn)
}

// Snapshot returns the current state
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	state := Idle
	if o.outstanding > 0 {
		state = InFlight
	}
	return Snapshot{
		Input:         o.input,
		Result:        o.result,
		Pair:          o.pair,
		State:         state,
		Outcome:       o.outcome,
		Healthy:       o.monitor.Healthy(),
		AutoTranslate: o.autoTranslate,
		Cached:        o.cached,
		Copied:        o.copied,
	}
}

func (o *Orchestrator) notify() {
	o.mu.Lock()
	snap := o.snapshotLocked()
	subscribers := slices.Clone(o.subscribers)
	o.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

// Healthy returns the last known backend health
func (o *Orchestrator) Healthy() bool {
	return o.monitor.Healthy()
}

// CheckHealth re-checks the backend now
func (o *Orchestrator) CheckHealth(ctx context.Context) bool {
	return o.monitor.Check(ctx)
}

// CanTranslate reports whether the manual translate action is enabled
func (o *Orchestrator) CanTranslate() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.monitor.Healthy() && o.outstanding == 0 && strings.TrimSpace(o.input) != ""
}

// CacheLen returns the number of cached translations
func (o *Orchestrator) CacheLen() int {
	return o.cache.Len()
}

// SetInput replaces the input text without translating it
func (o *Orchestrator) SetInput(text string) {
	o.mu.Lock()
	o.input = text
	o.mu.Unlock()
	o.notify()
}

// SubmitInput sets the input and translates it. The clipboard watcher hands
// new clipboard text here.
func (o *Orchestrator) SubmitInput(ctx context.Context, text string) {
	o.SetInput(text)
	o.Translate(ctx, text)
}

// TranslateInput is the manual translate action
func (o *Orchestrator) TranslateInput(ctx context.Context) error {
	o.mu.Lock()
	input := o.input
	o.mu.Unlock()

	if !o.CanTranslate() {
		return ErrUnavailable
	}
	o.Translate(ctx, input)
	return nil
}

// Translate translates text with the current pair and blocks until the
// attempt is done. Blank text is ignored.
func (o *Orchestrator) Translate(ctx context.Context, text string) {
	o.mu.Lock()
	pair := o.pair
	o.mu.Unlock()

	o.translate(ctx, text, pair)
}

func (o *Orchestrator) translateShortcut(ctx context.Context, text string, pair language.Pair) {
	o.SetInput(text)
	o.translate(ctx, text, pair)
}

func (o *Orchestrator) translate(ctx context.Context, text string, pair language.Pair) {
	if strings.TrimSpace(text) == "" {
		return
	}

	key := translation.KeyFor(text, pair)
	if cached, ok := o.cache.Get(key); ok {
		o.showCached(cached)
		return
	}

	o.mu.Lock()
	o.nextSeq++
	seq := o.nextSeq
	o.outstanding++
	o.mu.Unlock()
	o.notify()

	translated, err := o.request(ctx, text, pair)

	if err == nil {
		o.cache.Put(key, translated)
		o.record(ctx, text, translated, pair)
	}

	o.mu.Lock()
	o.outstanding--
	if seq > o.appliedSeq {
		o.appliedSeq = seq
		if err != nil {
			o.result = ErrorMessage
			o.outcome = Failed
		} else {
			o.result = translated
			o.outcome = Success
		}
	} else {
		o.logger.Printf("Discarding stale translation of %q", internal.Abbreviate(text, 40))
	}
	o.mu.Unlock()
	o.notify()
}

func (o *Orchestrator) request(ctx context.Context, text string, pair language.Pair) (string, error) {
	resp, err := o.backend.Translate(ctx, &translation.Request{
		Text: text,
		From: pair.EffectiveFrom(),
		To:   pair.To,
	})
	if err != nil {
		o.logger.Printf("Translation error: %v", err)
		return "", err
	}
	return resp.TranslatedText, nil
}

func (o *Orchestrator) record(ctx context.Context, text, translated string, pair language.Pair) {
	if o.history == nil {
		return
	}
	err := o.history.Append(ctx, history.Entry{
		Text:       text,
		Translated: translated,
		From:       pair.From,
		To:         pair.To,
		Provider:   o.backend.Name(),
	})
	if err != nil {
		o.logger.Printf("Warning: Failed to save translation history: %v", err)
	}
}

// showCached displays a cache hit. A hit counts as the newest displayed
// answer, so older requests still in flight will not overwrite it.
func (o *Orchestrator) showCached(text string) {
	o.mu.Lock()
	o.nextSeq++
	o.appliedSeq = o.nextSeq
	o.result = text
	o.outcome = Success
	o.cached = true
	o.cachedGen++
	gen := o.cachedGen
	if o.cachedTimer != nil {
		o.cachedTimer.Stop()
	}
	o.cachedTimer = time.AfterFunc(o.indicator, func() {
		o.mu.Lock()
		if o.cachedGen != gen {
			o.mu.Unlock()
			return
		}
		o.cached = false
		o.mu.Unlock()
		o.notify()
	})
	o.mu.Unlock()
	o.notify()
}

// SetPair changes the language pair and rebinds the shortcut
func (o *Orchestrator) SetPair(pair language.Pair) error {
	pair, err := pair.Canonical()
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.pair = pair
	o.mu.Unlock()

	o.rebind()
	o.notify()
	return nil
}

// SetFrom changes the source language
func (o *Orchestrator) SetFrom(from language.Language) error {
	o.mu.Lock()
	pair := o.pair
	o.mu.Unlock()

	pair.From = from
	return o.SetPair(pair)
}

// SetTo changes the target language
func (o *Orchestrator) SetTo(to language.Language) error {
	o.mu.Lock()
	pair := o.pair
	o.mu.Unlock()

	pair.To = to
	return o.SetPair(pair)
}

// SwitchLanguages swaps source and target and moves the result into the
// input. It does nothing while the source is Auto and reports whether it
// switched.
func (o *Orchestrator) SwitchLanguages() bool {
	o.mu.Lock()
	swapped, ok := o.pair.Swapped()
	if !ok {
		o.mu.Unlock()
		return false
	}
	o.pair = swapped
	o.input = o.result
	o.result = ""
	o.mu.Unlock()

	o.rebind()
	o.notify()
	return true
}

// rebind subscribes the shortcut for the current pair. Before Start and
// after Close there is nothing to bind.
func (o *Orchestrator) rebind() {
	o.mu.Lock()
	ctx, pair := o.ctx, o.pair
	o.mu.Unlock()

	if o.listener == nil || ctx == nil || ctx.Err() != nil {
		return
	}
	o.listener.Bind(ctx, pair)
}

// SetAutoTranslate turns clipboard watching on or off
func (o *Orchestrator) SetAutoTranslate(enabled bool) {
	o.applyAutoTranslate(func() {
		o.autoTranslate = enabled
	})
	o.notify()
}

// applyAutoTranslate runs update under the state lock and then starts or
// stops the watcher to match the flag. Calls are serialized, so the watcher
// always ends up in the state of the last flag written.
func (o *Orchestrator) applyAutoTranslate(update func()) {
	o.autoMu.Lock()
	defer o.autoMu.Unlock()

	o.mu.Lock()
	update()
	enabled, ctx := o.autoTranslate, o.ctx
	o.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}
	if enabled {
		o.watcher.Start(ctx)
	} else {
		o.watcher.Stop()
	}
}

// CopyResult writes the result to the clipboard. Failures are logged only.
func (o *Orchestrator) CopyResult(ctx context.Context) {
	o.mu.Lock()
	result := o.result
	o.mu.Unlock()

	if result == "" {
		return
	}
	if err := o.accessor.WriteText(ctx, result); err != nil {
		o.logger.Printf("Failed to copy to clipboard: %v", err)
		return
	}

	o.mu.Lock()
	o.copied = true
	o.copiedGen++
	gen := o.copiedGen
	if o.copiedTimer != nil {
		o.copiedTimer.Stop()
	}
	o.copiedTimer = time.AfterFunc(o.indicator, func() {
		o.mu.Lock()
		if o.copiedGen != gen {
			o.mu.Unlock()
			return
		}
		o.copied = false
		o.mu.Unlock()
		o.notify()
	})
	o.mu.Unlock()
	o.notify()
}

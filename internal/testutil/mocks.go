package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeberg.org/snonux/neural/internal/translation"
)

// MockClipboard mocks the system clipboard
type MockClipboard struct {
	mu       sync.Mutex
	text     string
	readErr  error
	writeErr error
	reads    int
	writes   []string
}

// NewMockClipboard creates a clipboard holding text
func NewMockClipboard(text string) *MockClipboard {
	return &MockClipboard{text: text}
}

// ReadText mocks reading the clipboard
func (m *MockClipboard) ReadText(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.text, nil
}

// WriteText mocks writing the clipboard
func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, text)
	m.text = text
	return nil
}

// SetText changes the clipboard content as a user copy would
func (m *MockClipboard) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SetReadError makes subsequent reads fail
func (m *MockClipboard) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetWriteError makes subsequent writes fail
func (m *MockClipboard) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Reads returns the number of ReadText calls
func (m *MockClipboard) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns everything written so far
func (m *MockClipboard) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// ErrBackendDown is what MockBackend returns when Fail is set
var ErrBackendDown = errors.New("backend down")

// MockBackend mocks a translation backend
type MockBackend struct {
	mu           sync.Mutex
	translations map[string]string
	fail         bool
	healthy      bool
	healthErr    error
	gates        map[string]chan struct{}
	calls        []translation.Request
	healthCalls  int
}

// NewMockBackend creates a healthy backend
func NewMockBackend() *MockBackend {
	return &MockBackend{
		translations: make(map[string]string),
		gates:        make(map[string]chan struct{}),
		healthy:      true,
	}
}

// SetTranslation fixes the answer for a text
func (m *MockBackend) SetTranslation(text, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations[text] = translated
}

// SetFail makes translations fail
func (m *MockBackend) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// SetHealth sets the health check answer
func (m *MockBackend) SetHealth(healthy bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
	m.healthErr = err
}

// Hold makes translations of text block until the returned function is called
func (m *MockBackend) Hold(text string) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gates[text] = gate
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Translate mocks translating text
func (m *MockBackend) Translate(ctx context.Context, req *translation.Request) (*translation.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, *req)
	gate := m.gates[req.Text]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return nil, ErrBackendDown
	}
	if translated, ok := m.translations[req.Text]; ok {
		return &translation.Response{TranslatedText: translated}, nil
	}

	// Default mock translation
	return &translation.Response{
		TranslatedText: fmt.Sprintf("%s in %s", req.Text, req.To),
	}, nil
}

// CheckHealth mocks the health endpoint
func (m *MockBackend) CheckHealth(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthCalls++
	return m.healthy, m.healthErr
}

// Name returns the provider name
func (m *MockBackend) Name() string {
	return "mock"
}

// Calls returns the translation requests received so far
func (m *MockBackend) Calls() []translation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]translation.Request(nil), m.calls...)
}

// CallCount returns the number of translation requests
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// HealthCalls returns the number of health checks
func (m *MockBackend) HealthCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthCalls
}

package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/neural/internal/cli"
	"codeberg.org/snonux/neural/internal/history"
	"codeberg.org/snonux/neural/internal/language"
	"codeberg.org/snonux/neural/internal/testutil"
	"codeberg.org/snonux/neural/internal/translation"
)

// listingBackend adds a model list to the mock backend
type listingBackend struct {
	*testutil.MockBackend
	models []string
}

func (b *listingBackend) ListModels(ctx context.Context) ([]string, error) {
	return b.models, nil
}

func newTestProcessor(t *testing.T, backend translation.Backend) (*Processor, *bytes.Buffer, *translation.Config) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	cli.SetDefaults()
	viper.Set("history.path", filepath.Join(t.TempDir(), history.DefaultFile))

	out := &bytes.Buffer{}
	var used translation.Config
	p := NewProcessor(cli.NewFlags())
	p.out = out
	p.logger = log.New(io.Discard, "", 0)
	p.newBackend = func(config *translation.Config) (translation.Backend, error) {
		used = *config
		return backend, nil
	}
	return p, out, &used
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.newBackend == nil {
		t.Error("Backend factory not initialized")
	}
}

func TestTranslateFile(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.SetTranslation("# Hello\n", "# こんにちは")
	p, out, used := newTestProcessor(t, backend)

	dir := t.TempDir()
	input := filepath.Join(dir, "README.md")
	output := filepath.Join(dir, "README.ja.md")
	testutil.CreateTestFile(t, input, []byte("# Hello\n"))

	p.flags.To = "japanese"
	p.flags.OutputFile = output

	if err := p.TranslateFile(input); err != nil {
		t.Fatalf("TranslateFile() error = %v", err)
	}

	testutil.AssertFileContent(t, output, []byte("# こんにちは"))

	calls := backend.Calls()
	if len(calls) != 1 {
		t.Fatalf("Backend called %d times", len(calls))
	}
	if !calls[0].Document || calls[0].From != language.English || calls[0].To != language.Japanese {
		t.Errorf("Request = %+v", calls[0])
	}
	if used.Timeout < DocumentTimeout {
		t.Errorf("Backend timeout = %v, want at least %v", used.Timeout, DocumentTimeout)
	}
	if used.Logger != p.logger {
		t.Error("Backend config does not carry the processor logger")
	}
	if !strings.Contains(out.String(), "Translation complete!") {
		t.Errorf("Output = %q", out.String())
	}
}

func TestTranslateFile_FreeFormTarget(t *testing.T) {
	backend := testutil.NewMockBackend()
	p, _, _ := newTestProcessor(t, backend)

	dir := t.TempDir()
	input := filepath.Join(dir, "in.md")
	testutil.CreateTestFile(t, input, []byte("Hello"))

	p.flags.From = "Auto"
	p.flags.To = "Simplified Chinese"
	p.flags.OutputFile = filepath.Join(dir, "out.md")

	if err := p.TranslateFile(input); err != nil {
		t.Fatalf("TranslateFile() error = %v", err)
	}
	call := backend.Calls()[0]
	if call.From != language.English || call.To != "Simplified Chinese" {
		t.Errorf("Request languages = %s -> %s", call.From, call.To)
	}
}

func TestTranslateFile_Errors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.md")
	testutil.CreateTestFile(t, input, []byte("Hello"))

	tests := []struct {
		name   string
		input  string
		from   string
		to     string
		output string
		fail   bool
	}{
		{name: "auto target", input: input, from: "English", to: "auto", output: filepath.Join(dir, "a.md")},
		{name: "empty target", input: input, from: "English", to: " ", output: filepath.Join(dir, "b.md")},
		{name: "missing input", input: filepath.Join(dir, "missing.md"), from: "English", to: "German", output: filepath.Join(dir, "c.md")},
		{name: "missing output", input: input, from: "English", to: "German"},
		{name: "backend failure", input: input, from: "English", to: "German", output: filepath.Join(dir, "d.md"), fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewMockBackend()
			backend.SetFail(tt.fail)
			p, _, _ := newTestProcessor(t, backend)
			p.flags.From = tt.from
			p.flags.To = tt.to
			p.flags.OutputFile = tt.output

			if err := p.TranslateFile(tt.input); err == nil {
				t.Fatal("TranslateFile() expected error")
			}
			if tt.output != "" {
				testutil.AssertFileNotExists(t, tt.output)
			}
		})
	}
}

func TestCheckHealth(t *testing.T) {
	backend := &listingBackend{
		MockBackend: testutil.NewMockBackend(),
		models:      []string{"qwen2.5:3b", "llama3.2:latest"},
	}
	p, out, _ := newTestProcessor(t, backend)

	if err := p.CheckHealth(); err != nil {
		t.Fatalf("CheckHealth() error = %v", err)
	}

	for _, want := range []string{"mock is running", "* qwen2.5:3b", "llama3.2:latest"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheckHealth_Unhealthy(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		err     error
	}{
		{"unhealthy answer", false, nil},
		{"transport error", false, errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewMockBackend()
			backend.SetHealth(tt.healthy, tt.err)
			p, _, _ := newTestProcessor(t, backend)

			if err := p.CheckHealth(); err == nil {
				t.Error("CheckHealth() expected error")
			}
		})
	}
}

func TestShowHistory(t *testing.T) {
	p, out, _ := newTestProcessor(t, testutil.NewMockBackend())

	if err := p.ShowHistory(); err != nil {
		t.Fatalf("ShowHistory() error = %v", err)
	}
	if !strings.Contains(out.String(), "No translations yet") {
		t.Errorf("Output = %q", out.String())
	}

	store, err := history.Open(cli.HistoryPath())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	for i, text := range []string{"first", "second\nline", "third"} {
		err := store.Append(context.Background(), history.Entry{
			Text: text, Translated: strings.ToUpper(text),
			From: language.Auto, To: language.German, Provider: "ollama",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	_ = store.Close()

	out.Reset()
	p.flags.Limit = 2
	if err := p.ShowHistory(); err != nil {
		t.Fatalf("ShowHistory() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "third") || !strings.Contains(got, "second line") {
		t.Errorf("Output missing recent entries:\n%s", got)
	}
	if strings.Contains(got, "first") {
		t.Errorf("Output exceeds limit:\n%s", got)
	}
	if !strings.Contains(got, "2025-06-01 12:02  Auto -> German  [ollama]") {
		t.Errorf("Output header not found:\n%s", got)
	}
}

func TestParseDocumentLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    language.Language
		wantErr bool
	}{
		{"english", language.English, false},
		{" Korean ", language.Korean, false},
		{"Simplified Chinese", "Simplified Chinese", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDocumentLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDocumentLanguage(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDocumentLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGUIBackend_UsesWindowLogger(t *testing.T) {
	backend := testutil.NewMockBackend()
	p, _, used := newTestProcessor(t, backend)
	viper.Set("backend.provider", "openai")

	logger := log.New(io.Discard, "window: ", 0)
	got, err := p.guiBackend(logger)
	if err != nil {
		t.Fatalf("guiBackend() error = %v", err)
	}
	if got != backend {
		t.Error("guiBackend() returned a different backend")
	}
	if used.Logger != logger {
		t.Error("Backend config does not carry the window logger")
	}
	if used.Provider != "openai" {
		t.Errorf("Provider = %s, want openai", used.Provider)
	}
}

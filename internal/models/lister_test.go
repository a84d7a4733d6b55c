package models

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeModelLister struct {
	ids []string
	err error
}

func (f *fakeModelLister) ListModels(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestCategorize(t *testing.T) {
	text, other := Categorize([]string{
		"gpt-4o-mini", "tts-1", "qwen2.5:3b", "dall-e-3", "text-embedding-3-small",
		"whisper-1", "llama3.2:latest", "models/gemini-2.0-flash", "models/imagen-3.0",
	})

	wantText := []string{"gpt-4o-mini", "llama3.2:latest", "models/gemini-2.0-flash", "qwen2.5:3b"}
	wantOther := []string{"dall-e-3", "models/imagen-3.0", "text-embedding-3-small", "tts-1", "whisper-1"}

	if !reflect.DeepEqual(text, wantText) {
		t.Errorf("text = %v, want %v", text, wantText)
	}
	if !reflect.DeepEqual(other, wantOther) {
		t.Errorf("other = %v, want %v", other, wantOther)
	}
}

func TestListAvailableModels(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		current  string
		contains []string
		excludes []string
	}{
		{
			name:     "marks current model",
			ids:      []string{"qwen2.5:3b", "llama3.2:latest"},
			current:  "qwen2.5:3b",
			contains: []string{"Available models:", "* qwen2.5:3b", "  llama3.2:latest"},
			excludes: []string{"Warning"},
		},
		{
			name:     "gemini model prefix",
			ids:      []string{"models/gemini-2.0-flash"},
			current:  "gemini-2.0-flash",
			contains: []string{"* models/gemini-2.0-flash"},
			excludes: []string{"Warning"},
		},
		{
			name:     "missing current model",
			ids:      []string{"llama3.2:latest"},
			current:  "qwen2.5:3b",
			contains: []string{"Warning: Configured model qwen2.5:3b is not available"},
		},
		{
			name:     "hides non text models",
			ids:      []string{"gpt-4o", "tts-1", "dall-e-3"},
			contains: []string{"gpt-4o", "... and 2 speech, image or embedding models"},
			excludes: []string{"tts-1", "dall-e-3"},
		},
		{
			name:     "no models",
			contains: []string{"No translation models found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			lister := NewLister(&fakeModelLister{ids: tt.ids}, out)

			if err := lister.ListAvailableModels(context.Background(), tt.current); err != nil {
				t.Fatalf("ListAvailableModels() error = %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("Output missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out.String(), s) {
					t.Errorf("Output unexpectedly contains %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestListAvailableModels_Errors(t *testing.T) {
	err := NewLister(&fakeModelLister{err: errors.New("connection refused")}, &bytes.Buffer{}).
		ListAvailableModels(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Expected wrapped error, got %v", err)
	}

	if err := NewLister(nil, &bytes.Buffer{}).ListAvailableModels(context.Background(), ""); err == nil {
		t.Error("Expected error without a model source")
	}
}

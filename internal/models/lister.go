package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/snonux/neural/internal/translation"
)

// nonTextMarkers identify models that cannot translate text
var nonTextMarkers = []string{"tts", "audio", "dall-e", "whisper", "embed", "moderation", "image", "imagen", "veo"}

// Lister prints the models of a backend
type Lister struct {
	source translation.ModelLister
	out    io.Writer
}

// NewLister creates a new model lister writing to out
func NewLister(source translation.ModelLister, out io.Writer) *Lister {
	return &Lister{
		source: source,
		out:    out,
	}
}

// Categorize splits model IDs into text models and everything else, both
// sorted
func Categorize(ids []string) (text, other []string) {
	for _, id := range ids {
		if isTextModel(id) {
			text = append(text, id)
		} else {
			other = append(other, id)
		}
	}
	sort.Strings(text)
	sort.Strings(other)
	return text, other
}

func isTextModel(id string) bool {
	lower := strings.ToLower(id)
	for _, marker := range nonTextMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// ListAvailableModels prints the translation capable models, marking
// current, and warns when current is not among them
func (l *Lister) ListAvailableModels(ctx context.Context, current string) error {
	if l.source == nil {
		return errors.New("backend cannot list its models")
	}

	ids, err := l.source.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	text, other := Categorize(ids)

	fmt.Fprintln(l.out, "Available models:")
	if len(text) == 0 {
		fmt.Fprintln(l.out, "  No translation models found")
	}

	found := false
	for _, id := range text {
		marker := " "
		if id == current || strings.TrimPrefix(id, "models/") == current {
			marker = "*"
			found = true
		}
		fmt.Fprintf(l.out, "  %s %s\n", marker, id)
	}
	if len(other) > 0 {
		fmt.Fprintf(l.out, "  ... and %d speech, image or embedding models\n", len(other))
	}

	if current != "" && !found {
		fmt.Fprintf(l.out, "\nWarning: Configured model %s is not available\n", current)
	}
	return nil
}

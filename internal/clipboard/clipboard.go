package clipboard

import "context"

// Accessor reads and writes clipboard text
type Accessor interface {
	// ReadText returns the current clipboard text, empty when there is none
	ReadText(ctx context.Context) (string, error)

	// WriteText replaces the clipboard content
	WriteText(ctx context.Context, text string) error
}

// SinkFunc receives new clipboard text
type SinkFunc func(ctx context.Context, text string)

package gui

import (
	"context"

	"fyne.io/fyne/v2"
)

// fyneClipboard adapts the window clipboard to clipboard.Accessor. Clipboard
// access has to happen on the fyne main goroutine, so each call is scheduled
// with fyne.Do and waits for the result unless ctx ends first.
type fyneClipboard struct {
	window fyne.Window
}

func newFyneClipboard(window fyne.Window) *fyneClipboard {
	return &fyneClipboard{window: window}
}

// ReadText implements clipboard.Accessor
func (c *fyneClipboard) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := make(chan string, 1)
	fyne.Do(func() {
		result <- c.window.Clipboard().Content()
	})

	select {
	case text := <-result:
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// WriteText implements clipboard.Accessor
func (c *fyneClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	fyne.Do(func() {
		c.window.Clipboard().SetContent(text)
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

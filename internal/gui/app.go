package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/neural/internal"
	"codeberg.org/snonux/neural/internal/language"
	"codeberg.org/snonux/neural/internal/orchestrator"
	"codeberg.org/snonux/neural/internal/shortcut"
	"codeberg.org/snonux/neural/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	inputEntry      *CustomMultiLineEntry
	resultEntry     *widget.Entry
	fromSelect      *widget.Select
	toSelect        *widget.Select
	switchButton    *ttwidget.Button
	translateButton *ttwidget.Button
	copyButton      *ttwidget.Button
	autoCheck       *widget.Check
	statusLabel     *widget.Label
	healthLabel     *widget.Label
	logViewer       *LogViewer

	orch   *orchestrator.Orchestrator
	hub    *shortcut.Hub
	logger *log.Logger

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration. The clipboard, shortcut
// source and logger of the orchestrator config are provided by the GUI.
type Config struct {
	Orchestrator orchestrator.Config

	// NewBackend builds the backend with the window logger when
	// Orchestrator.Backend is not set
	NewBackend func(logger *log.Logger) (translation.Backend, error)

	// LogOutput receives a copy of the log, stderr when nil
	LogOutput io.Writer
}

// New creates the window and the orchestrator behind it
func New(config *Config) (*Application, error) {
	if config == nil {
		return nil, errors.New("gui config is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.neural")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:       myApp,
		ctx:       ctx,
		cancel:    cancel,
		hub:       shortcut.NewHub(),
		logViewer: NewLogViewer(),
	}
	a.window = myApp.NewWindow(fmt.Sprintf("Neural v%s - Translation Assistant", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 600))

	logOutput := config.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}
	a.logger = log.New(NewLogWriter(a.logViewer, logOutput), "", 0)

	orchConfig := config.Orchestrator
	orchConfig.Clipboard = newFyneClipboard(a.window)
	orchConfig.Shortcuts = a.hub
	orchConfig.Logger = a.logger
	if orchConfig.Backend == nil && config.NewBackend != nil {
		backend, err := config.NewBackend(a.logger)
		if err != nil {
			cancel()
			return nil, err
		}
		orchConfig.Backend = backend
	}

	orch, err := orchestrator.New(orchConfig)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	a.orch = orch

	a.setupUI()
	a.orch.Subscribe(func(orchestrator.Snapshot) {
		fyne.Do(a.refresh)
	})

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.fromSelect = widget.NewSelect(language.Strings(language.All()), func(s string) {
		a.onLanguageChanged(s, a.orch.SetFrom)
	})
	a.toSelect = widget.NewSelect(language.Strings(language.Targets()), func(s string) {
		a.onLanguageChanged(s, a.orch.SetTo)
	})

	a.switchButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onSwitchLanguages)
	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.copyButton = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopy)

	a.autoCheck = widget.NewCheck("Auto-translate clipboard", func(enabled bool) {
		// Applied in click order; stopping the watcher cancels a pending
		// clipboard read, so this never waits on the main goroutine
		a.orch.SetAutoTranslate(enabled)
	})

	a.inputEntry = NewCustomMultiLineEntry()
	a.inputEntry.SetPlaceHolder("Text to translate...")
	a.inputEntry.OnChanged = a.orch.SetInput
	a.inputEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})

	a.resultEntry = widget.NewMultiLineEntry()
	a.resultEntry.SetPlaceHolder("Translation")
	a.resultEntry.Wrapping = fyne.TextWrapWord
	a.resultEntry.Disable()

	a.statusLabel = widget.NewLabel("Ready")
	a.healthLabel = widget.NewLabel("Backend: checking...")
	a.healthLabel.TextStyle = fyne.TextStyle{Italic: true}

	toolbar := container.NewHBox(
		widget.NewLabel("From"),
		a.fromSelect,
		a.switchButton,
		widget.NewLabel("To"),
		a.toSelect,
		widget.NewSeparator(),
		a.autoCheck,
	)

	inputPane := container.NewBorder(
		nil,
		container.NewHBox(a.translateButton),
		nil, nil,
		a.inputEntry,
	)
	resultPane := container.NewBorder(
		nil,
		container.NewHBox(a.copyButton),
		nil, nil,
		a.resultEntry,
	)
	panes := container.NewHSplit(inputPane, resultPane)
	panes.SetOffset(0.5)

	statusSection := container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, a.statusLabel, a.healthLabel),
		a.logViewer,
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		statusSection,
		nil, nil,
		panes,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.switchButton.SetToolTip("Switch languages")
	a.translateButton.SetToolTip("Translate input (Ctrl+Shift+T translates the clipboard)")
	a.copyButton.SetToolTip("Copy translation")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.orch.Close()
	})

	a.setupKeyboardShortcuts()
	a.refresh()
}

// setupKeyboardShortcuts binds the translate shortcut to the shortcut hub
func (a *Application) setupKeyboardShortcuts() {
	translate := &desktop.CustomShortcut{
		KeyName:  fyne.KeyT,
		Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
	}
	a.window.Canvas().AddShortcut(translate, func(fyne.Shortcut) {
		a.hub.Emit(shortcut.TranslateShortcut)
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

// Run starts the orchestrator and the GUI event loop
func (a *Application) Run() {
	go func() {
		if err := a.orch.Start(a.ctx); err != nil {
			a.logger.Printf("Failed to start: %v", err)
		}
	}()

	a.window.ShowAndRun()
}

func (a *Application) onLanguageChanged(value string, set func(language.Language) error) {
	l, err := language.Parse(value)
	if err != nil {
		a.logger.Printf("Warning: %v", err)
		return
	}
	if err := set(l); err != nil {
		a.logger.Printf("Warning: Failed to change language: %v", err)
	}
}

func (a *Application) onSwitchLanguages() {
	if !a.orch.SwitchLanguages() {
		a.statusLabel.SetText("Cannot switch while the source language is Auto")
	}
}

func (a *Application) onTranslate() {
	go func() {
		if err := a.orch.TranslateInput(a.ctx); err != nil {
			a.logger.Printf("Warning: %v", err)
		}
	}()
}

func (a *Application) onCopy() {
	go a.orch.CopyResult(a.ctx)
}

// refresh renders the current orchestrator state. Must run on the main
// goroutine.
func (a *Application) refresh() {
	snap := a.orch.Snapshot()

	if a.inputEntry.Text != snap.Input {
		a.inputEntry.SetText(snap.Input)
	}
	if a.resultEntry.Text != snap.Result {
		a.resultEntry.SetText(snap.Result)
	}
	if a.fromSelect.Selected != string(snap.Pair.From) {
		a.fromSelect.SetSelected(string(snap.Pair.From))
	}
	if a.toSelect.Selected != string(snap.Pair.To) {
		a.toSelect.SetSelected(string(snap.Pair.To))
	}
	if a.autoCheck.Checked != snap.AutoTranslate {
		a.autoCheck.SetChecked(snap.AutoTranslate)
	}

	if a.orch.CanTranslate() {
		a.translateButton.Enable()
	} else {
		a.translateButton.Disable()
	}
	if snap.Result == "" {
		a.copyButton.Disable()
	} else {
		a.copyButton.Enable()
	}
	if snap.Pair.From == language.Auto {
		a.switchButton.Disable()
	} else {
		a.switchButton.Enable()
	}

	if snap.Healthy {
		a.healthLabel.SetText("Backend: online")
	} else {
		a.healthLabel.SetText("Backend: offline")
	}

	a.statusLabel.SetText(statusText(snap))
}

func statusText(snap orchestrator.Snapshot) string {
	switch {
	case snap.State == orchestrator.InFlight:
		return "Translating..."
	case snap.Copied:
		return "Copied to clipboard"
	case snap.Cached:
		return "From cache"
	case snap.Outcome == orchestrator.Failed:
		return "Translation failed"
	default:
		return "Ready"
	}
}

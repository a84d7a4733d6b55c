package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"codeberg.org/snonux/neural/internal"
	"codeberg.org/snonux/neural/internal/cli"
	"codeberg.org/snonux/neural/internal/gui"
	"codeberg.org/snonux/neural/internal/history"
	"codeberg.org/snonux/neural/internal/language"
	"codeberg.org/snonux/neural/internal/models"
	"codeberg.org/snonux/neural/internal/translation"
)

const (
	// DocumentTimeout bounds a whole document translation
	DocumentTimeout = 5 * time.Minute
	// HealthTimeout bounds the health command
	HealthTimeout = 10 * time.Second
)

// Processor executes the cli commands
type Processor struct {
	flags  *cli.Flags
	out    io.Writer
	logger *log.Logger

	newBackend func(*translation.Config) (translation.Backend, error)
}

// NewProcessor creates a processor printing to stdout
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:      flags,
		out:        os.Stdout,
		logger:     log.New(os.Stderr, "", log.LstdFlags),
		newBackend: translation.NewBackend,
	}
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	orchConfig, err := cli.OrchestratorConfig()
	if err != nil {
		return err
	}

	if cli.HistoryEnabled() {
		store, err := history.Open(cli.HistoryPath())
		if err != nil {
			p.logger.Printf("Warning: History disabled: %v", err)
		} else {
			defer func() { _ = store.Close() }()
			orchConfig.History = store
		}
	}

	app, err := gui.New(&gui.Config{
		Orchestrator: orchConfig,
		NewBackend:   p.guiBackend,
	})
	if err != nil {
		return err
	}
	app.Run()

	return nil
}

// guiBackend builds the configured backend logging to the window log
func (p *Processor) guiBackend(logger *log.Logger) (translation.Backend, error) {
	config := cli.BackendConfig()
	config.Logger = logger
	return p.newBackend(config)
}

// TranslateFile translates a markdown document into the output file
func (p *Processor) TranslateFile(path string) error {
	from, err := parseDocumentLanguage(p.flags.From)
	if err != nil {
		return fmt.Errorf("invalid source language: %w", err)
	}
	if from == language.Auto {
		from = language.DefaultSource
	}
	to, err := parseDocumentLanguage(p.flags.To)
	if err != nil {
		return fmt.Errorf("invalid target language: %w", err)
	}
	if to == language.Auto {
		return language.ErrAutoTarget
	}
	if p.flags.OutputFile == "" {
		return errors.New("output file is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	config := cli.BackendConfig()
	config.Logger = p.logger
	if config.Timeout < DocumentTimeout {
		config.Timeout = DocumentTimeout
	}
	backend, err := p.newBackend(config)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Translating %s -> %s\n", from, to)
	fmt.Fprintf(p.out, "Input: %s\n", path)
	fmt.Fprintf(p.out, "Output: %s\n", p.flags.OutputFile)
	fmt.Fprintf(p.out, "Model: %s (%s)\n", config.ModelName(), backend.Name())
	fmt.Fprintf(p.out, "\nTranslating... (this may take a few minutes)\n")

	ctx, cancel := context.WithTimeout(context.Background(), DocumentTimeout)
	defer cancel()

	resp, err := backend.Translate(ctx, &translation.Request{
		Text:     string(content),
		From:     from,
		To:       to,
		Document: true,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := os.WriteFile(p.flags.OutputFile, []byte(resp.TranslatedText), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", p.flags.OutputFile, err)
	}

	fmt.Fprintf(p.out, "Translation complete!\n")
	fmt.Fprintf(p.out, "Output size: %d bytes\n", len(resp.TranslatedText))
	return nil
}

// parseDocumentLanguage accepts the known languages and, since whole
// documents go to a generative model, any other non-empty name such as
// "Simplified Chinese"
func parseDocumentLanguage(name string) (language.Language, error) {
	l, err := language.Parse(name)
	if err == nil {
		return l, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", err
	}
	return language.Language(name), nil
}

// CheckHealth reports whether the backend is reachable and lists its models
func (p *Processor) CheckHealth() error {
	config := cli.BackendConfig()
	config.Logger = p.logger
	backend, err := p.newBackend(config)
	if err != nil {
		return err
	}

	url := config.URL
	if url == "" {
		url = "default endpoint"
	}
	fmt.Fprintf(p.out, "Checking %s health at %s...\n\n", backend.Name(), url)

	ctx, cancel := context.WithTimeout(context.Background(), HealthTimeout)
	defer cancel()

	healthy, err := backend.CheckHealth(ctx)
	if err != nil {
		return fmt.Errorf("%s health check failed: %w", backend.Name(), err)
	}
	if !healthy {
		return fmt.Errorf("%s health check failed", backend.Name())
	}
	fmt.Fprintf(p.out, "%s is running\n\n", backend.Name())

	lister, ok := backend.(translation.ModelLister)
	if !ok {
		return nil
	}
	if err := models.NewLister(lister, p.out).ListAvailableModels(ctx, config.ModelName()); err != nil {
		// The backend answered, a missing model list is not fatal
		p.logger.Printf("Warning: %v", err)
	}
	return nil
}

// ShowHistory prints the most recent translations
func (p *Processor) ShowHistory() error {
	store, err := history.Open(cli.HistoryPath())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), p.flags.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No translations yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(p.out, "%s  %s -> %s  [%s]\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.From, e.To, e.Provider)
		fmt.Fprintf(p.out, "  %s\n", internal.Abbreviate(oneLine(e.Text), 70))
		fmt.Fprintf(p.out, "  %s\n\n", internal.Abbreviate(oneLine(e.Translated), 70))
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mklimuk/vocal-notes/pkg/ai"
	"github.com/mklimuk/vocal-notes/pkg/db"
	"github.com/mklimuk/vocal-notes/pkg/gateway"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

type app struct {
	notebook *notebook.Notebook
	repo     *db.Repository
	closers  []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// newGenerator picks the model client for provider. The returned function
// releases the client.
func newGenerator(ctx context.Context, provider string, getenv func(string) string) (ai.Generator, func() error, error) {
	switch strings.ToLower(provider) {
	case "gemini":
		key := getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, nil, errors.New("GEMINI_API_KEY environment variable is required when using gemini provider")
		}
		c, err := ai.NewGeminiClient(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		return c, c.Close, nil
	case "openai":
		key := getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, nil, errors.New("OPENAI_API_KEY environment variable is required when using openai provider")
		}
		c := ai.NewOpenAIClient(key)
		return c, c.Close, nil
	case "moonshot":
		key := getenv("MOONSHOT_API_KEY")
		if key == "" {
			return nil, nil, errors.New("MOONSHOT_API_KEY environment variable is required when using moonshot provider")
		}
		c := ai.NewMoonshotClient(key)
		return c, c.Close, nil
	case "anthropic":
		key := getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, nil, errors.New("ANTHROPIC_API_KEY environment variable is required when using anthropic provider")
		}
		c := ai.NewAnthropicClient(key)
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown AI provider: %s", provider)
	}
}

func newApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	a := &app{}

	model, closeModel, err := newGenerator(ctx, aiProvider, os.Getenv)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeModel)

	gwOpts := []gateway.Option{gateway.WithLogger(logger), gateway.WithModel(modelName), gateway.WithVoice(voiceID)}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		gwOpts = append(gwOpts, gateway.WithSynthesizer(ai.NewElevenLabsClient(key)))
	} else {
		logger.Warn("ELEVENLABS_API_KEY is not set, audio generation is disabled")
	}
	gw := gateway.New(model, gwOpts...)

	var storeOpts []note.Option
	if seed {
		storeOpts = append(storeOpts, note.WithNotes(note.SampleNotes()...))
	}
	store := note.NewStore(storeOpts...)

	nbOpts := []notebook.Option{notebook.WithLogger(logger)}
	if dbPath != "" {
		database, err := db.NewDB(dbPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		if err := database.InitSchema(); err != nil {
			a.Close()
			return nil, err
		}
		a.repo = db.NewRepository(database)
		nbOpts = append(nbOpts, notebook.WithOperationLog(a.repo))
	}

	a.notebook = notebook.New(store, gw, nbOpts...)
	logger.Info("notebook ready", "provider", aiProvider, "notes", store.Len(), "operation_log", dbPath != "")
	return a, nil
}

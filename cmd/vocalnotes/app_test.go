package main

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	env := map[string]string{
		"OPENAI_API_KEY":    "sk-test",
		"MOONSHOT_API_KEY":  "ms-test",
		"ANTHROPIC_API_KEY": "an-test",
	}
	getenv := func(k string) string { return env[k] }

	for _, provider := range []string{"openai", "moonshot", "Anthropic"} {
		gen, closeFn, err := newGenerator(context.Background(), provider, getenv)
		if err != nil {
			t.Errorf("%s: %v", provider, err)
			continue
		}
		if gen == nil || closeFn == nil {
			t.Errorf("%s: expected client and closer", provider)
			continue
		}
		if err := closeFn(); err != nil {
			t.Errorf("%s: close: %v", provider, err)
		}
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	empty := func(string) string { return "" }

	_, _, err := newGenerator(context.Background(), "gemini", empty)
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected missing key error, got %v", err)
	}

	_, _, err = newGenerator(context.Background(), "llama", empty)
	if err == nil || !strings.Contains(err.Error(), "unknown AI provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}

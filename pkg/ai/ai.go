// Package ai contains the clients for the hosted model services the gateway
// delegates to: structured text generation and text-to-speech.
package ai

import (
	"context"
	"errors"
)

// Generator defines the interface for structured generation
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single model invocation.
type Request struct {
	// Model overrides the client's default model when set.
	Model  string
	Prompt string
	Media  []Media
	// Fields names the string properties the reply must carry as a JSON
	// object. Empty means free text.
	Fields []string
}

var (
	// ErrMediaUnsupported is returned by text-only providers when a request
	// carries inline media.
	ErrMediaUnsupported = errors.New("provider does not accept inline media")
	// ErrEmptyResponse is returned when the provider answered without content.
	ErrEmptyResponse = errors.New("no content returned")
)

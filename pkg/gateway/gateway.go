// Package gateway wraps each AI operation in one validated request/response
// call: check the input, format the prompt, invoke the model once, and unwrap
// a typed result. It never touches the note store.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mklimuk/vocal-notes/pkg/ai"
)

// Operation names, used in errors, logs and the operation log.
const (
	OpSummarize        = "summarize"
	OpEdit             = "edit"
	OpTranscribe       = "transcribe"
	OpSynthesizeAudio  = "synthesize_audio"
	OpExtractSlideText = "extract_slide_text"
	OpContinueWriting  = "continue_writing"
)

// Gateway runs AI operations against injected model clients.
type Gateway struct {
	model    ai.Generator
	speech   ai.Synthesizer
	voice    string
	modelID  string
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSynthesizer sets the text-to-speech client. Without one,
// SynthesizeAudio fails with ErrMissingCredential.
func WithSynthesizer(s ai.Synthesizer) Option {
	return func(g *Gateway) { g.speech = s }
}

// WithVoice sets the voice identifier passed to the synthesizer.
func WithVoice(voice string) Option {
	return func(g *Gateway) { g.voice = voice }
}

// WithModel declares the model identifier sent with every request.
func WithModel(id string) Option {
	return func(g *Gateway) { g.modelID = id }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a Gateway
func New(model ai.Generator, opts ...Option) *Gateway {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("gateway: register notblank: %v", err))
	}

	g := &Gateway{
		model:    model,
		validate: v,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanSynthesize reports whether a text-to-speech credential was configured.
func (g *Gateway) CanSynthesize() bool {
	return g.speech != nil
}

// invoke is the shared validate → format → call → unwrap path. Out must be a
// struct whose string fields carry json names; they become the required
// properties of the model's JSON reply.
func invoke[In, Out any](ctx context.Context, g *Gateway, op string, in In, format func(In) (ai.Request, error)) (Out, error) {
	var out Out
	if err := g.checkInput(op, in); err != nil {
		return out, err
	}

	req, err := format(in)
	if err != nil {
		return out, err
	}
	if req.Model == "" {
		req.Model = g.modelID
	}
	req.Fields = outputFields(reflect.TypeOf(out))

	start := time.Now()
	raw, err := g.model.Generate(ctx, req)
	if err != nil {
		kind := ErrOperationFailed
		if errors.Is(err, ai.ErrEmptyResponse) {
			kind = ErrOutputMissing
		}
		g.logger.Warn("ai operation failed", "op", op, "duration", time.Since(start), "error", err)
		return out, &Error{Op: op, Kind: kind, Err: err}
	}

	if err := json.Unmarshal([]byte(cleanJSON(raw)), &out); err != nil {
		g.logger.Warn("ai operation returned malformed output", "op", op, "error", err)
		return out, &Error{Op: op, Kind: ErrOutputMissing, Err: err}
	}
	if err := g.validate.Struct(out); err != nil {
		g.logger.Warn("ai operation returned incomplete output", "op", op, "error", err)
		return out, &Error{Op: op, Kind: ErrOutputMissing, Field: firstField(err)}
	}

	g.logger.Info("ai operation completed", "op", op, "duration", time.Since(start))
	return out, nil
}

func (g *Gateway) checkInput(op string, in any) error {
	err := g.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return invalidInput(op, fe.Field(), fmt.Errorf("failed %q check", fe.Tag()))
	}
	return invalidInput(op, "", err)
}

func firstField(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Field()
	}
	return ""
}

func outputFields(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.String {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields = append(fields, name)
		}
	}
	return fields
}

// cleanJSON strips the markdown fences models like to wrap JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

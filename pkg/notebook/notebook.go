// Package notebook runs AI operations against stored notes: it reads the
// note, calls the gateway once and merges the result back into the store.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/mklimuk/vocal-notes/pkg/ai"
	"github.com/mklimuk/vocal-notes/pkg/db"
	"github.com/mklimuk/vocal-notes/pkg/gateway"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/vault"
)

// ErrBusy is returned when another AI operation is already running on the note.
var ErrBusy = errors.New("an operation is already in progress for this note")

// Source kinds for imported and captured notes.
const (
	SourcePresentation = "presentation"
	SourceVoice        = "voice"
	SourceMarkdown     = "markdown"
)

// VoiceNoteTitle is the title given to notes captured from a recording.
const VoiceNoteTitle = "Voice note"

// OperationLog records AI operations.
type OperationLog interface {
	LogOperation(op db.Operation) error
}

// Notebook is safe for concurrent use.
type Notebook struct {
	store  *note.Store
	ai     *gateway.Gateway
	ops    OperationLog
	logger *slog.Logger

	mu   sync.Mutex
	busy map[string]struct{}
}

// Option configures a Notebook.
type Option func(*Notebook)

// WithOperationLog records every gateway call.
func WithOperationLog(l OperationLog) Option {
	return func(nb *Notebook) { nb.ops = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(nb *Notebook) { nb.logger = l }
}

// New creates a Notebook over the store and gateway.
func New(store *note.Store, gw *gateway.Gateway, opts ...Option) *Notebook {
	nb := &Notebook{
		store:  store,
		ai:     gw,
		logger: slog.Default(),
		busy:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(nb)
	}
	return nb
}

// Store returns the underlying note store.
func (nb *Notebook) Store() *note.Store {
	return nb.store
}

// CanSynthesize reports whether GenerateAudio has a text-to-speech backend.
func (nb *Notebook) CanSynthesize() bool {
	return nb.ai.CanSynthesize()
}

// Busy reports whether an operation is running on the note.
func (nb *Notebook) Busy(id string) bool {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	_, ok := nb.busy[id]
	return ok
}

func (nb *Notebook) acquire(id string) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if _, ok := nb.busy[id]; ok {
		return fmt.Errorf("%w: %s", ErrBusy, id)
	}
	nb.busy[id] = struct{}{}
	return nil
}

func (nb *Notebook) release(id string) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	delete(nb.busy, id)
}

// withNote locks the note, runs op on a snapshot of it and applies the
// returned patch. Nothing is written when op fails.
func (nb *Notebook) withNote(ctx context.Context, id, opName string, op func(ctx context.Context, n note.Note) (note.Patch, error)) (note.Note, error) {
	if err := nb.acquire(id); err != nil {
		return note.Note{}, err
	}
	defer nb.release(id)

	n, err := nb.store.Get(id)
	if err != nil {
		return note.Note{}, err
	}

	start := time.Now()
	patch, err := op(ctx, n)
	nb.record(id, opName, start, err)
	if err != nil {
		return note.Note{}, err
	}

	return nb.store.Update(id, patch)
}

func (nb *Notebook) record(id, opName string, start time.Time, err error) {
	if nb.ops == nil {
		return
	}
	rec := db.Operation{
		NoteID:    id,
		Op:        opName,
		Status:    db.StatusOK,
		Duration:  time.Since(start),
		CreatedAt: start,
	}
	if err != nil {
		rec.Status = db.StatusFailed
		rec.Error = err.Error()
	}
	if logErr := nb.ops.LogOperation(rec); logErr != nil {
		nb.logger.Error("failed to record operation", "op", opName, "note", id, "error", logErr)
	}
}

// Summarize stores an AI summary of the note content.
func (nb *Notebook) Summarize(ctx context.Context, id string) (note.Note, error) {
	return nb.withNote(ctx, id, gateway.OpSummarize, func(ctx context.Context, n note.Note) (note.Patch, error) {
		out, err := nb.ai.Summarize(ctx, gateway.SummarizeInput{Content: n.Content})
		if err != nil {
			return note.Patch{}, err
		}
		return note.Patch{Summary: note.String(out.Summary)}, nil
	})
}

// Edit replaces the note content with the edited text.
func (nb *Notebook) Edit(ctx context.Context, id string, action gateway.EditAction) (note.Note, error) {
	return nb.withNote(ctx, id, gateway.OpEdit, func(ctx context.Context, n note.Note) (note.Patch, error) {
		out, err := nb.ai.Edit(ctx, gateway.EditInput{Content: n.Content, Action: action})
		if err != nil {
			return note.Patch{}, err
		}
		return note.Patch{Content: note.String(out.EditedContent)}, nil
	})
}

// Continue appends AI-written text to the note content.
func (nb *Notebook) Continue(ctx context.Context, id string) (note.Note, error) {
	return nb.withNote(ctx, id, gateway.OpContinueWriting, func(ctx context.Context, n note.Note) (note.Patch, error) {
		out, err := nb.ai.ContinueWriting(ctx, gateway.ContinueWritingInput{Content: n.Content})
		if err != nil {
			return note.Patch{}, err
		}
		return note.Patch{Content: note.String(appendText(n.Content, out.ContinuedText, " "))}, nil
	})
}

// GenerateAudio reads the note content aloud and stores the audio as a data
// URI.
func (nb *Notebook) GenerateAudio(ctx context.Context, id string) (note.Note, error) {
	return nb.withNote(ctx, id, gateway.OpSynthesizeAudio, func(ctx context.Context, n note.Note) (note.Patch, error) {
		out, err := nb.ai.SynthesizeAudio(ctx, gateway.SynthesizeAudioInput{Text: n.Content})
		if err != nil {
			return note.Patch{}, err
		}
		return note.Patch{AudioURL: note.String(out.Audio.DataURI())}, nil
	})
}

// Dictate transcribes the recording and appends the transcript to the note
// as a new paragraph.
func (nb *Notebook) Dictate(ctx context.Context, id string, audio ai.Media) (note.Note, error) {
	return nb.withNote(ctx, id, gateway.OpTranscribe, func(ctx context.Context, n note.Note) (note.Patch, error) {
		out, err := nb.ai.Transcribe(ctx, gateway.TranscribeInput{Audio: audio})
		if err != nil {
			return note.Patch{}, err
		}
		return note.Patch{Content: note.String(appendText(n.Content, out.TranscribedText, "\n\n"))}, nil
	})
}

// CaptureVoice creates a new note from a transcribed recording.
func (nb *Notebook) CaptureVoice(ctx context.Context, audio ai.Media) (note.Note, error) {
	start := time.Now()
	out, err := nb.ai.Transcribe(ctx, gateway.TranscribeInput{Audio: audio})
	if err != nil {
		nb.record("", gateway.OpTranscribe, start, err)
		return note.Note{}, err
	}

	n, err := nb.store.Insert(note.Note{
		Title:   VoiceNoteTitle,
		Content: out.TranscribedText,
		Source:  &note.Source{Kind: SourceVoice},
	})
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to store voice note: %w", err)
	}
	nb.record(n.ID, gateway.OpTranscribe, start, nil)
	nb.logger.Info("captured voice note", "note", n.ID)
	return n, nil
}

// ImportSlides creates a new note from the text of a presentation. The note
// is titled after the file name without its extension.
func (nb *Notebook) ImportSlides(ctx context.Context, filename string, doc ai.Media) (note.Note, error) {
	start := time.Now()
	out, err := nb.ai.ExtractSlideText(ctx, gateway.ExtractSlideTextInput{Document: doc})
	if err != nil {
		nb.record("", gateway.OpExtractSlideText, start, err)
		return note.Note{}, err
	}

	n, err := nb.store.Insert(note.Note{
		Title:   titleFromFilename(filename),
		Content: out.ExtractedText,
		Source:  &note.Source{Kind: SourcePresentation, Filename: filepath.Base(filename)},
	})
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to store imported note: %w", err)
	}
	nb.record(n.ID, gateway.OpExtractSlideText, start, nil)
	nb.logger.Info("imported presentation", "note", n.ID, "file", filename)
	return n, nil
}

// ImportMarkdown creates a note from a markdown document. An identifier that
// is already taken is replaced with a fresh one.
func (nb *Notebook) ImportMarkdown(filename string, data []byte) (note.Note, error) {
	doc, err := vault.ParseBytes(data)
	if err != nil {
		return note.Note{}, fmt.Errorf("%w: %w", gateway.ErrInvalidInput, err)
	}

	n := doc.Note()
	if n.ID != "" {
		if _, err := nb.store.Get(n.ID); err == nil {
			n.ID = ""
		}
	}
	if n.Title == "" && filename != "" {
		n.Title = titleFromFilename(filename)
	}
	if n.Source == nil {
		n.Source = &note.Source{Kind: SourceMarkdown}
		if filename != "" {
			n.Source.Filename = filepath.Base(filename)
		}
	}

	created, err := nb.store.Insert(n)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to store imported note: %w", err)
	}
	return created, nil
}

// appendText joins addition onto content with sep. Content that already ends
// in whitespace keeps it when sep is a single space.
func appendText(content, addition, sep string) string {
	trimmed := strings.TrimRightFunc(content, unicode.IsSpace)
	if trimmed == "" {
		return addition
	}
	if sep == " " && trimmed != content {
		return content + addition
	}
	return trimmed + sep + addition
}

func titleFromFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mklimuk/vocal-notes/pkg/ai"
)

var audioTypes = map[string]bool{
	"audio/wav":    true,
	"audio/wave":   true,
	"audio/x-wav":  true,
	"audio/mpeg":   true,
	"audio/mp3":    true,
	"audio/mp4":    true,
	"audio/x-m4a":  true,
	"audio/aac":    true,
	"audio/aiff":   true,
	"audio/x-aiff": true,
	"audio/ogg":    true,
	"audio/opus":   true,
	"audio/flac":   true,
	"audio/x-flac": true,
	"audio/webm":   true,
}

var presentationTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.openxmlformats-officedocument.presentationml.slideshow":    true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.oasis.opendocument.presentation":                           true,
}

// AcceptsAudio reports whether Transcribe takes this media type.
func AcceptsAudio(mimeType string) bool {
	return audioTypes[ai.Media{MIMEType: mimeType}.BaseType()]
}

// AcceptsPresentation reports whether ExtractSlideText takes this media type.
func AcceptsPresentation(mimeType string) bool {
	return presentationTypes[ai.Media{MIMEType: mimeType}.BaseType()]
}

// ParseMedia decodes a data URI supplied for field of op. Malformed input is
// reported as ErrInvalidInput.
func ParseMedia(op, field, dataURI string) (ai.Media, error) {
	if strings.TrimSpace(dataURI) == "" {
		return ai.Media{}, invalidInput(op, field, errors.New("required"))
	}
	m, err := ai.ParseDataURI(dataURI)
	if err != nil {
		return ai.Media{}, invalidInput(op, field, err)
	}
	return m, nil
}

func checkMedia(op, field string, m ai.Media, allowed map[string]bool) error {
	if len(m.Data) == 0 {
		return invalidInput(op, field, errors.New("empty payload"))
	}
	if !allowed[m.BaseType()] {
		return invalidInput(op, field, fmt.Errorf("unsupported media type %q", m.MIMEType))
	}
	return nil
}

// SummarizeInput is the note text to summarize.
type SummarizeInput struct {
	Content string `json:"content" validate:"notblank"`
}

// SummarizeOutput carries the summary.
type SummarizeOutput struct {
	Summary string `json:"summary" validate:"notblank"`
}

// Summarize produces a short summary of the content.
func (g *Gateway) Summarize(ctx context.Context, in SummarizeInput) (SummarizeOutput, error) {
	return invoke[SummarizeInput, SummarizeOutput](ctx, g, OpSummarize, in, func(in SummarizeInput) (ai.Request, error) {
		return ai.Request{Prompt: summarizePrompt(in.Content)}, nil
	})
}

// EditInput is the note text and the edit to apply.
type EditInput struct {
	Content string     `json:"content" validate:"notblank"`
	Action  EditAction `json:"-"`
}

// EditOutput carries the edited text.
type EditOutput struct {
	EditedContent string `json:"editedContent" validate:"notblank"`
}

// Edit rephrases, translates or grammar-fixes the content.
func (g *Gateway) Edit(ctx context.Context, in EditInput) (EditOutput, error) {
	return invoke[EditInput, EditOutput](ctx, g, OpEdit, in, func(in EditInput) (ai.Request, error) {
		if err := in.Action.validate(OpEdit); err != nil {
			return ai.Request{}, err
		}
		return ai.Request{Prompt: editPrompt(in.Content, in.Action)}, nil
	})
}

// TranscribeInput is an audio recording.
type TranscribeInput struct {
	Audio ai.Media `json:"audio"`
}

// TranscribeOutput carries the transcript.
type TranscribeOutput struct {
	TranscribedText string `json:"transcribedText" validate:"notblank"`
}

// Transcribe turns an audio recording into text.
func (g *Gateway) Transcribe(ctx context.Context, in TranscribeInput) (TranscribeOutput, error) {
	return invoke[TranscribeInput, TranscribeOutput](ctx, g, OpTranscribe, in, func(in TranscribeInput) (ai.Request, error) {
		if err := checkMedia(OpTranscribe, "audio", in.Audio, audioTypes); err != nil {
			return ai.Request{}, err
		}
		return ai.Request{Prompt: transcribePrompt(), Media: []ai.Media{in.Audio}}, nil
	})
}

// ExtractSlideTextInput is a presentation document.
type ExtractSlideTextInput struct {
	Document ai.Media `json:"document"`
}

// ExtractSlideTextOutput carries the slide text in slide order.
type ExtractSlideTextOutput struct {
	ExtractedText string `json:"extractedText" validate:"notblank"`
}

// ExtractSlideText pulls the readable text out of a presentation.
func (g *Gateway) ExtractSlideText(ctx context.Context, in ExtractSlideTextInput) (ExtractSlideTextOutput, error) {
	return invoke[ExtractSlideTextInput, ExtractSlideTextOutput](ctx, g, OpExtractSlideText, in, func(in ExtractSlideTextInput) (ai.Request, error) {
		if err := checkMedia(OpExtractSlideText, "document", in.Document, presentationTypes); err != nil {
			return ai.Request{}, err
		}
		return ai.Request{Prompt: extractSlidesPrompt(), Media: []ai.Media{in.Document}}, nil
	})
}

// ContinueWritingInput is the text to continue from.
type ContinueWritingInput struct {
	Content string `json:"content" validate:"notblank"`
}

// ContinueWritingOutput carries only the new text.
type ContinueWritingOutput struct {
	ContinuedText string `json:"continuedText" validate:"notblank"`
}

// ContinueWriting asks the model for text that follows the content. A reply
// that restates the content is trimmed back to the new part.
func (g *Gateway) ContinueWriting(ctx context.Context, in ContinueWritingInput) (ContinueWritingOutput, error) {
	out, err := invoke[ContinueWritingInput, ContinueWritingOutput](ctx, g, OpContinueWriting, in, func(in ContinueWritingInput) (ai.Request, error) {
		return ai.Request{Prompt: continuePrompt(in.Content)}, nil
	})
	if err != nil {
		return out, err
	}

	original := strings.TrimSpace(in.Content)
	if rest, ok := cutEcho(strings.TrimSpace(out.ContinuedText), original); ok {
		if strings.TrimSpace(rest) == "" {
			return ContinueWritingOutput{}, &Error{Op: OpContinueWriting, Kind: ErrOutputMissing, Field: "continuedText", Err: errors.New("model only repeated the input")}
		}
		out.ContinuedText = strings.TrimSpace(rest)
	}
	return out, nil
}

// cutEcho removes prefix from s only when it ends on a word boundary, so
// "Theory" is not cut by "The".
func cutEcho(s, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return s, false
	}
	if rest == "" {
		return rest, true
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	next, _ := utf8.DecodeRuneInString(rest)
	if isWordRune(last) && isWordRune(next) {
		return s, false
	}
	return rest, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// SynthesizeAudioInput is the text to read aloud.
type SynthesizeAudioInput struct {
	Text string `json:"text" validate:"notblank"`
}

// SynthesizeAudioOutput carries the generated speech.
type SynthesizeAudioOutput struct {
	Audio ai.Media `json:"audio"`
}

// SynthesizeAudio reads the text aloud through the text-to-speech service.
func (g *Gateway) SynthesizeAudio(ctx context.Context, in SynthesizeAudioInput) (SynthesizeAudioOutput, error) {
	if g.speech == nil {
		return SynthesizeAudioOutput{}, &Error{Op: OpSynthesizeAudio, Kind: ErrMissingCredential, Err: errors.New("text-to-speech API key is not configured")}
	}
	if err := g.checkInput(OpSynthesizeAudio, in); err != nil {
		return SynthesizeAudioOutput{}, err
	}

	audio, err := g.speech.Synthesize(ctx, in.Text, g.voice)
	if err != nil {
		g.logger.Warn("ai operation failed", "op", OpSynthesizeAudio, "error", err)
		if errors.Is(err, ai.ErrEmptyResponse) {
			return SynthesizeAudioOutput{}, &Error{Op: OpSynthesizeAudio, Kind: ErrOutputMissing, Err: err}
		}
		return SynthesizeAudioOutput{}, &Error{Op: OpSynthesizeAudio, Kind: ErrOperationFailed, Err: err}
	}
	if len(audio.Data) == 0 || audio.MIMEType == "" {
		return SynthesizeAudioOutput{}, &Error{Op: OpSynthesizeAudio, Kind: ErrOutputMissing, Field: "audio"}
	}

	g.logger.Info("ai operation completed", "op", OpSynthesizeAudio, "bytes", len(audio.Data))
	return SynthesizeAudioOutput{Audio: audio}, nil
}

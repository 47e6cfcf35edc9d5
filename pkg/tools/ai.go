package tools

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mklimuk/vocal-notes/pkg/gateway"
)

type EditNoteRequest struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	Language string `json:"language,omitempty"`
}

type TranscribeAudioRequest struct {
	ID    string `json:"id,omitempty"`
	Audio string `json:"audio"`
}

type ImportSlidesRequest struct {
	Filename string `json:"filename"`
	Document string `json:"document"`
}

func (ns *NotesServer) NewSummarizeNoteTool() {
	tool := mcp.NewTool(
		"summarize_note",
		mcp.WithDescription("Generate a summary of the note content and store it on the note"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.SummarizeNote))
}

// SummarizeNote stores an AI summary on the note.
func (ns *NotesServer) SummarizeNote(ctx context.Context, req mcp.CallToolRequest, params NoteIDRequest) (*mcp.CallToolResult, error) {
	n, err := ns.nb.Summarize(ctx, params.ID)
	if err != nil {
		return ns.errorResult("summarize_note", err)
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewEditNoteTool() {
	tool := mcp.NewTool(
		"edit_note",
		mcp.WithDescription("Rewrite the note content with AI"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
		mcp.WithString("action", mcp.Description("Edit to apply"), mcp.Required(), mcp.Enum("rephrase", "translate", "fix-grammar")),
		mcp.WithString("language", mcp.Description("Target language, required for translate")),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.EditNote))
}

// EditNote replaces the note content with the edited text.
func (ns *NotesServer) EditNote(ctx context.Context, req mcp.CallToolRequest, params EditNoteRequest) (*mcp.CallToolResult, error) {
	action, err := gateway.ParseEditAction(params.Action, params.Language)
	if err != nil {
		return ns.errorResult("edit_note", err)
	}
	n, err := ns.nb.Edit(ctx, params.ID, action)
	if err != nil {
		return ns.errorResult("edit_note", err)
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewContinueNoteTool() {
	tool := mcp.NewTool(
		"continue_note",
		mcp.WithDescription("Append an AI-written continuation to the note"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.ContinueNote))
}

// ContinueNote appends AI-written text.
func (ns *NotesServer) ContinueNote(ctx context.Context, req mcp.CallToolRequest, params NoteIDRequest) (*mcp.CallToolResult, error) {
	n, err := ns.nb.Continue(ctx, params.ID)
	if err != nil {
		return ns.errorResult("continue_note", err)
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewGenerateAudioTool() {
	tool := mcp.NewTool(
		"generate_audio",
		mcp.WithDescription("Read the note aloud with text-to-speech and attach the audio to the note"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.GenerateAudio))
}

// GenerateAudio attaches synthesized speech to the note and returns it as an
// embedded blob resource.
func (ns *NotesServer) GenerateAudio(ctx context.Context, req mcp.CallToolRequest, params NoteIDRequest) (*mcp.CallToolResult, error) {
	n, err := ns.nb.GenerateAudio(ctx, params.ID)
	if err != nil {
		return ns.errorResult("generate_audio", err)
	}
	audio, err := gateway.ParseMedia(gateway.OpSynthesizeAudio, "audio", n.AudioURL)
	if err != nil {
		return ns.errorResult("generate_audio", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent("Audio generated for note " + n.ID),
			mcp.NewEmbeddedResource(mcp.BlobResourceContents{
				URI:      "note://" + n.ID + "/audio",
				MIMEType: audio.MIMEType,
				Blob:     base64.StdEncoding.EncodeToString(audio.Data),
			}),
		},
	}, nil
}

func (ns *NotesServer) NewTranscribeAudioTool() {
	tool := mcp.NewTool(
		"transcribe_audio",
		mcp.WithDescription("Transcribe a recording. With an id the transcript is appended to that note, otherwise a new voice note is created"),
		mcp.WithString("audio", mcp.Description("Recording as a data URI (data:audio/...;base64,...)"), mcp.Required()),
		mcp.WithString("id", mcp.Description("Note id to append to (optional)")),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.TranscribeAudio))
}

// TranscribeAudio dictates into an existing note or captures a new one.
func (ns *NotesServer) TranscribeAudio(ctx context.Context, req mcp.CallToolRequest, params TranscribeAudioRequest) (*mcp.CallToolResult, error) {
	audio, err := gateway.ParseMedia(gateway.OpTranscribe, "audio", params.Audio)
	if err != nil {
		return ns.errorResult("transcribe_audio", err)
	}
	if params.ID != "" {
		n, err := ns.nb.Dictate(ctx, params.ID, audio)
		if err != nil {
			return ns.errorResult("transcribe_audio", err)
		}
		return jsonResult(n)
	}
	n, err := ns.nb.CaptureVoice(ctx, audio)
	if err != nil {
		return ns.errorResult("transcribe_audio", err)
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewImportSlidesTool() {
	tool := mcp.NewTool(
		"import_slides",
		mcp.WithDescription("Create a note from the text of a presentation (pptx, ppt, odp)"),
		mcp.WithString("filename", mcp.Description("Original file name, used as the note title"), mcp.Required()),
		mcp.WithString("document", mcp.Description("Presentation as a data URI"), mcp.Required()),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.ImportSlides))
}

// ImportSlides creates a note from a presentation.
func (ns *NotesServer) ImportSlides(ctx context.Context, req mcp.CallToolRequest, params ImportSlidesRequest) (*mcp.CallToolResult, error) {
	doc, err := gateway.ParseMedia(gateway.OpExtractSlideText, "document", params.Document)
	if err != nil {
		return ns.errorResult("import_slides", err)
	}
	n, err := ns.nb.ImportSlides(ctx, params.Filename, doc)
	if err != nil {
		return ns.errorResult("import_slides", err)
	}
	return jsonResult(n)
}

package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mklimuk/vocal-notes/pkg/ai"
	"github.com/mklimuk/vocal-notes/pkg/gateway"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

type stubModel struct {
	reply string
	calls int
}

func (m *stubModel) Generate(ctx context.Context, req ai.Request) (string, error) {
	m.calls++
	return m.reply, nil
}

type stubSpeech struct{}

func (stubSpeech) Synthesize(ctx context.Context, text, voice string) (ai.Media, error) {
	return ai.Media{MIMEType: "audio/mpeg", Data: []byte("ID3")}, nil
}

func newTestServer(t *testing.T, model ai.Generator, opts ...gateway.Option) (*NotesServer, *note.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := note.NewStore()
	gw := gateway.New(model, append(opts, gateway.WithLogger(logger))...)
	return NewNotesServer(notebook.New(store, gw, notebook.WithLogger(logger)), "test", logger), store
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	return result.Content[0].(mcp.TextContent).Text
}

func noteOf(t *testing.T, result *mcp.CallToolResult) note.Note {
	t.Helper()
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}
	var n note.Note
	if err := json.Unmarshal([]byte(textOf(t, result)), &n); err != nil {
		t.Fatalf("failed to decode note: %v", err)
	}
	return n
}

func TestNewNotesServer(t *testing.T) {
	ns, _ := newTestServer(t, &stubModel{})
	if ns.McpServer == nil {
		t.Fatal("MCP server not initialized")
	}
}

func TestNoteTools(t *testing.T) {
	ctx := context.Background()
	ns, store := newTestServer(t, &stubModel{})

	result, err := ns.CreateNote(ctx, mcp.CallToolRequest{}, CreateNoteRequest{Title: "Plan", Content: "step one"})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	created := noteOf(t, result)
	if created.Title != "Plan" || created.Content != "step one" {
		t.Errorf("unexpected note %+v", created)
	}

	content := "step one\nstep two"
	result, err = ns.UpdateNote(ctx, mcp.CallToolRequest{}, UpdateNoteRequest{ID: created.ID, Content: &content})
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if got := noteOf(t, result); got.Content != content || got.Title != "Plan" {
		t.Errorf("unexpected updated note %+v", got)
	}

	result, err = ns.ListNotes(ctx, mcp.CallToolRequest{}, ListNotesRequest{})
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	var list struct {
		Notes      []note.Note `json:"notes"`
		SelectedID string      `json:"selected_id"`
	}
	if err := json.Unmarshal([]byte(textOf(t, result)), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Notes) != 1 || list.SelectedID != created.ID {
		t.Errorf("unexpected list %+v", list)
	}

	result, err = ns.DeleteNote(ctx, mcp.CallToolRequest{}, NoteIDRequest{ID: created.ID})
	if err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if result.IsError {
		t.Errorf("delete returned error: %s", textOf(t, result))
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d notes", store.Len())
	}
}

func TestMissingNoteIsToolError(t *testing.T) {
	ctx := context.Background()
	ns, _ := newTestServer(t, &stubModel{})

	result, err := ns.DeleteNote(ctx, mcp.CallToolRequest{}, NoteIDRequest{ID: "missing"})
	if err != nil {
		t.Fatalf("expected tool error result, got protocol error %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError")
	}
	if !strings.Contains(textOf(t, result), "not found") {
		t.Errorf("unexpected message %q", textOf(t, result))
	}
}

func TestSummarizeAndEditTools(t *testing.T) {
	ctx := context.Background()
	model := &stubModel{reply: `{"summary": "Two steps.", "editedContent": "First step."}`}
	ns, store := newTestServer(t, model)

	n := store.Create()
	if _, err := store.Update(n.ID, note.Patch{Content: note.String("step one, step two")}); err != nil {
		t.Fatal(err)
	}

	result, err := ns.SummarizeNote(ctx, mcp.CallToolRequest{}, NoteIDRequest{ID: n.ID})
	if err != nil {
		t.Fatalf("SummarizeNote failed: %v", err)
	}
	if got := noteOf(t, result); got.Summary != "Two steps." {
		t.Errorf("summary = %q", got.Summary)
	}

	result, err = ns.EditNote(ctx, mcp.CallToolRequest{}, EditNoteRequest{ID: n.ID, Action: "translate"})
	if err != nil {
		t.Fatalf("EditNote failed: %v", err)
	}
	if !result.IsError || !strings.Contains(textOf(t, result), "language") {
		t.Errorf("expected language error, got %q", textOf(t, result))
	}
	if model.calls != 1 {
		t.Errorf("expected 1 model call, got %d", model.calls)
	}

	result, err = ns.EditNote(ctx, mcp.CallToolRequest{}, EditNoteRequest{ID: n.ID, Action: "rephrase"})
	if err != nil {
		t.Fatalf("EditNote failed: %v", err)
	}
	if got := noteOf(t, result); got.Content != "First step." {
		t.Errorf("content = %q", got.Content)
	}
}

func TestGenerateAudioTool(t *testing.T) {
	ctx := context.Background()
	ns, store := newTestServer(t, &stubModel{}, gateway.WithSynthesizer(stubSpeech{}))
	n := store.Create()
	if _, err := store.Update(n.ID, note.Patch{Content: note.String("hello")}); err != nil {
		t.Fatal(err)
	}

	result, err := ns.GenerateAudio(ctx, mcp.CallToolRequest{}, NoteIDRequest{ID: n.ID})
	if err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if result.IsError || len(result.Content) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	res, ok := result.Content[1].(mcp.EmbeddedResource)
	if !ok {
		t.Fatalf("expected embedded resource, got %T", result.Content[1])
	}
	blob, ok := res.Resource.(mcp.BlobResourceContents)
	if !ok {
		t.Fatalf("expected blob contents, got %T", res.Resource)
	}
	if blob.MIMEType != "audio/mpeg" || blob.Blob != "SUQz" {
		t.Errorf("unexpected blob %+v", blob)
	}
}

func TestGenerateAudioWithoutKey(t *testing.T) {
	ns, store := newTestServer(t, &stubModel{})
	n := store.Create()

	result, err := ns.GenerateAudio(context.Background(), mcp.CallToolRequest{}, NoteIDRequest{ID: n.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError || !strings.Contains(textOf(t, result), "missing credential") {
		t.Errorf("expected missing credential, got %q", textOf(t, result))
	}
}

func TestTranscribeAudioTool(t *testing.T) {
	ctx := context.Background()
	ns, store := newTestServer(t, &stubModel{reply: `{"transcribedText": "new idea"}`})
	audio := ai.Media{MIMEType: "audio/wav", Data: []byte("RIFF")}.DataURI()

	result, err := ns.TranscribeAudio(ctx, mcp.CallToolRequest{}, TranscribeAudioRequest{Audio: audio})
	if err != nil {
		t.Fatal(err)
	}
	captured := noteOf(t, result)
	if captured.Title != notebook.VoiceNoteTitle || captured.Content != "new idea" {
		t.Errorf("unexpected captured note %+v", captured)
	}

	result, err = ns.TranscribeAudio(ctx, mcp.CallToolRequest{}, TranscribeAudioRequest{ID: captured.ID, Audio: audio})
	if err != nil {
		t.Fatal(err)
	}
	if got := noteOf(t, result); got.Content != "new idea\n\nnew idea" {
		t.Errorf("content = %q", got.Content)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 note, got %d", store.Len())
	}

	result, err = ns.TranscribeAudio(ctx, mcp.CallToolRequest{}, TranscribeAudioRequest{Audio: "not-a-data-uri"})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for malformed audio")
	}
}

func TestImportSlidesTool(t *testing.T) {
	ns, _ := newTestServer(t, &stubModel{reply: `{"extractedText": "Agenda"}`})
	deck := ai.Media{MIMEType: "application/vnd.oasis.opendocument.presentation", Data: []byte("PK")}.DataURI()

	result, err := ns.ImportSlides(context.Background(), mcp.CallToolRequest{}, ImportSlidesRequest{Filename: "kickoff.odp", Document: deck})
	if err != nil {
		t.Fatal(err)
	}
	got := noteOf(t, result)
	if got.Title != "kickoff" || got.Content != "Agenda" {
		t.Errorf("unexpected note %+v", got)
	}
}

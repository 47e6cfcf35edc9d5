package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mklimuk/vocal-notes/pkg/note"
)

type ListNotesRequest struct{}

type CreateNoteRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type UpdateNoteRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type NoteIDRequest struct {
	ID string `json:"id"`
}

func (ns *NotesServer) NewListNotesTool() {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List all notes, newest first, with the id of the selected note"),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.ListNotes))
}

// ListNotes returns every note in store order.
func (ns *NotesServer) ListNotes(ctx context.Context, req mcp.CallToolRequest, params ListNotesRequest) (*mcp.CallToolResult, error) {
	store := ns.nb.Store()
	resp := struct {
		Notes      []note.Note `json:"notes"`
		SelectedID string      `json:"selected_id,omitempty"`
	}{Notes: store.List()}
	if selected, ok := store.Selected(); ok {
		resp.SelectedID = selected.ID
	}
	return jsonResult(resp)
}

func (ns *NotesServer) NewCreateNoteTool() {
	tool := mcp.NewTool(
		"create_note",
		mcp.WithDescription("Create a new note and select it"),
		mcp.WithString("title", mcp.Description("Note title (optional)")),
		mcp.WithString("content", mcp.Description("Note content (optional)")),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.CreateNote))
}

// CreateNote adds a note at the top of the list.
func (ns *NotesServer) CreateNote(ctx context.Context, req mcp.CallToolRequest, params CreateNoteRequest) (*mcp.CallToolResult, error) {
	store := ns.nb.Store()
	n := store.Create()
	if params.Title != "" || params.Content != "" {
		var err error
		n, err = store.Update(n.ID, note.Patch{Title: note.String(params.Title), Content: note.String(params.Content)})
		if err != nil {
			return ns.errorResult("create_note", err)
		}
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewUpdateNoteTool() {
	tool := mcp.NewTool(
		"update_note",
		mcp.WithDescription("Change the title and/or content of a note. Omitted fields are kept"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New content")),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.UpdateNote))
}

// UpdateNote applies a partial update.
func (ns *NotesServer) UpdateNote(ctx context.Context, req mcp.CallToolRequest, params UpdateNoteRequest) (*mcp.CallToolResult, error) {
	n, err := ns.nb.Store().Update(params.ID, note.Patch{Title: params.Title, Content: params.Content})
	if err != nil {
		return ns.errorResult("update_note", err)
	}
	return jsonResult(n)
}

func (ns *NotesServer) NewDeleteNoteTool() {
	tool := mcp.NewTool(
		"delete_note",
		mcp.WithDescription("Delete a note"),
		mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
	)
	ns.McpServer.AddTool(tool, mcp.NewTypedToolHandler(ns.DeleteNote))
}

// DeleteNote removes a note.
func (ns *NotesServer) DeleteNote(ctx context.Context, req mcp.CallToolRequest, params NoteIDRequest) (*mcp.CallToolResult, error) {
	if err := ns.nb.Store().Delete(params.ID); err != nil {
		return ns.errorResult("delete_note", err)
	}
	return mcp.NewToolResultText("deleted " + params.ID), nil
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mklimuk/vocal-notes/pkg/db"
	"github.com/mklimuk/vocal-notes/pkg/gateway"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/notebook"
	"github.com/mklimuk/vocal-notes/pkg/sync"
	"github.com/mklimuk/vocal-notes/pkg/vault"
)

// maxBodyBytes bounds request bodies, which may carry base64 media.
const maxBodyBytes = 32 << 20

// OperationLister reads the operation log.
type OperationLister interface {
	ListOperations(noteID string, limit int) ([]db.Operation, error)
}

// VaultExporter writes a snapshot of the notes to the markdown vault.
type VaultExporter interface {
	Export(notes []note.Note) (sync.ExportResult, error)
}

// Handler holds dependencies for API handlers
type Handler struct {
	Notebook *notebook.Notebook
	Ops      OperationLister
	Exporter VaultExporter
	Logger   *slog.Logger
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleListNotes handles GET /notes
func (h *Handler) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	store := h.Notebook.Store()
	resp := map[string]interface{}{"notes": store.List()}
	if selected, ok := store.Selected(); ok {
		resp["selected_id"] = selected.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateNote handles POST /notes. The body is optional.
func (h *Handler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if r.ContentLength != 0 {
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	store := h.Notebook.Store()
	n := store.Create()
	if req.Title != "" || req.Content != "" {
		var err error
		n, err = store.Update(n.ID, note.Patch{Title: note.String(req.Title), Content: note.String(req.Content)})
		if err != nil {
			h.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, n)
}

// HandleGetNote handles GET /notes/{id}
func (h *Handler) HandleGetNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notebook.Store().Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleUpdateNote handles PATCH /notes/{id}
func (h *Handler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var patch note.Patch
	if !decode(w, r, &patch) {
		return
	}
	n, err := h.Notebook.Store().Update(r.PathValue("id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleDeleteNote handles DELETE /notes/{id}
func (h *Handler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.Notebook.Store().Delete(r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSelectNote handles POST /notes/{id}/select
func (h *Handler) HandleSelectNote(w http.ResponseWriter, r *http.Request) {
	store := h.Notebook.Store()
	id := r.PathValue("id")
	if err := store.Select(id); err != nil {
		h.writeError(w, err)
		return
	}
	n, err := store.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleGetSelected handles GET /notes/selected
func (h *Handler) HandleGetSelected(w http.ResponseWriter, r *http.Request) {
	n, ok := h.Notebook.Store().Selected()
	if !ok {
		http.Error(w, "no note selected", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleExportMarkdown handles GET /notes/{id}/markdown
func (h *Handler) HandleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notebook.Store().Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, err := vault.MarshalNote(n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(vault.Filename(n), `"`, "")+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gateway.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, note.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, notebook.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrOperationFailed), errors.Is(err, gateway.ErrOutputMissing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// HandleExportVault handles POST /exports/vault
func (h *Handler) HandleExportVault(w http.ResponseWriter, r *http.Request) {
	if h.Exporter == nil {
		http.Error(w, "vault export is disabled", http.StatusNotFound)
		return
	}
	res, err := h.Exporter.Export(h.Notebook.Store().List())
	if err != nil {
		h.Logger.Error("Vault export failed", "error", err)
		http.Error(w, "failed to export vault: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

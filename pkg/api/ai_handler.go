package api

import (
	"net/http"
	"strconv"

	"github.com/mklimuk/vocal-notes/pkg/gateway"
	"github.com/mklimuk/vocal-notes/pkg/note"
)

type editRequest struct {
	Action   string `json:"action"`
	Language string `json:"language"`
}

type audioRequest struct {
	Audio string `json:"audio"` // data URI
}

type slidesRequest struct {
	Filename string `json:"filename"`
	Document string `json:"document"` // data URI
}

type markdownRequest struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

func (h *Handler) respondNote(w http.ResponseWriter, status int, n note.Note, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, n)
}

// HandleSummarize handles POST /notes/{id}/summarize
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notebook.Summarize(r.Context(), r.PathValue("id"))
	h.respondNote(w, http.StatusOK, n, err)
}

// HandleEdit handles POST /notes/{id}/edit
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !decode(w, r, &req) {
		return
	}
	action, err := gateway.ParseEditAction(req.Action, req.Language)
	if err != nil {
		h.writeError(w, err)
		return
	}
	n, err := h.Notebook.Edit(r.Context(), r.PathValue("id"), action)
	h.respondNote(w, http.StatusOK, n, err)
}

// HandleContinue handles POST /notes/{id}/continue
func (h *Handler) HandleContinue(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notebook.Continue(r.Context(), r.PathValue("id"))
	h.respondNote(w, http.StatusOK, n, err)
}

// HandleGenerateAudio handles POST /notes/{id}/audio
func (h *Handler) HandleGenerateAudio(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notebook.GenerateAudio(r.Context(), r.PathValue("id"))
	h.respondNote(w, http.StatusOK, n, err)
}

// HandleDictate handles POST /notes/{id}/dictate
func (h *Handler) HandleDictate(w http.ResponseWriter, r *http.Request) {
	var req audioRequest
	if !decode(w, r, &req) {
		return
	}
	audio, err := gateway.ParseMedia(gateway.OpTranscribe, "audio", req.Audio)
	if err != nil {
		h.writeError(w, err)
		return
	}
	n, err := h.Notebook.Dictate(r.Context(), r.PathValue("id"), audio)
	h.respondNote(w, http.StatusOK, n, err)
}

// HandleCaptureVoice handles POST /voice
func (h *Handler) HandleCaptureVoice(w http.ResponseWriter, r *http.Request) {
	var req audioRequest
	if !decode(w, r, &req) {
		return
	}
	audio, err := gateway.ParseMedia(gateway.OpTranscribe, "audio", req.Audio)
	if err != nil {
		h.writeError(w, err)
		return
	}
	n, err := h.Notebook.CaptureVoice(r.Context(), audio)
	h.respondNote(w, http.StatusCreated, n, err)
}

// HandleImportSlides handles POST /imports/slides
func (h *Handler) HandleImportSlides(w http.ResponseWriter, r *http.Request) {
	var req slidesRequest
	if !decode(w, r, &req) {
		return
	}
	doc, err := gateway.ParseMedia(gateway.OpExtractSlideText, "document", req.Document)
	if err != nil {
		h.writeError(w, err)
		return
	}
	n, err := h.Notebook.ImportSlides(r.Context(), req.Filename, doc)
	h.respondNote(w, http.StatusCreated, n, err)
}

// HandleImportMarkdown handles POST /imports/markdown
func (h *Handler) HandleImportMarkdown(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decode(w, r, &req) {
		return
	}
	n, err := h.Notebook.ImportMarkdown(req.Filename, []byte(req.Markdown))
	h.respondNote(w, http.StatusCreated, n, err)
}

// HandleListOperations handles GET /operations
func (h *Handler) HandleListOperations(w http.ResponseWriter, r *http.Request) {
	if h.Ops == nil {
		http.Error(w, "operation log is disabled", http.StatusNotFound)
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	ops, err := h.Ops.ListOperations(r.URL.Query().Get("note_id"), limit)
	if err != nil {
		http.Error(w, "failed to list operations: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"operations": ops})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

// NewRouter creates a new HTTP router. ops and exporter may be nil, in which
// case their routes answer 404.
func NewRouter(nb *notebook.Notebook, ops OperationLister, exporter VaultExporter, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		Notebook: nb,
		Ops:      ops,
		Exporter: exporter,
		Logger:   logger,
	}

	mux.HandleFunc("GET /notes", h.HandleListNotes)
	mux.HandleFunc("POST /notes", h.HandleCreateNote)
	mux.HandleFunc("GET /notes/selected", h.HandleGetSelected)
	mux.HandleFunc("GET /notes/{id}", h.HandleGetNote)
	mux.HandleFunc("PATCH /notes/{id}", h.HandleUpdateNote)
	mux.HandleFunc("DELETE /notes/{id}", h.HandleDeleteNote)
	mux.HandleFunc("POST /notes/{id}/select", h.HandleSelectNote)
	mux.HandleFunc("GET /notes/{id}/markdown", h.HandleExportMarkdown)

	mux.HandleFunc("POST /notes/{id}/summarize", h.HandleSummarize)
	mux.HandleFunc("POST /notes/{id}/edit", h.HandleEdit)
	mux.HandleFunc("POST /notes/{id}/continue", h.HandleContinue)
	mux.HandleFunc("POST /notes/{id}/audio", h.HandleGenerateAudio)
	mux.HandleFunc("POST /notes/{id}/dictate", h.HandleDictate)
	mux.HandleFunc("POST /voice", h.HandleCaptureVoice)
	mux.HandleFunc("POST /imports/slides", h.HandleImportSlides)
	mux.HandleFunc("POST /imports/markdown", h.HandleImportMarkdown)
	mux.HandleFunc("GET /operations", h.HandleListOperations)
	mux.HandleFunc("POST /exports/vault", h.HandleExportVault)

	return mux
}

// internal/availability/handler.go
package availability

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxRecordBytes = 1 << 20

type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, log: logger.With("component", "availability.handler")}
}

// Register mounts the availability routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/availability", h.HandleLookup)
	r.Get("/availability/{key}", h.HandleGet)
}

// HandleLookup takes the catalog record as a JSON body.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var rec CatalogRecord
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRecordBytes))
	if err := dec.Decode(&rec); err != nil {
		http.Error(w, "invalid catalog record: "+err.Error(), http.StatusBadRequest)
		return
	}
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		http.Error(w, "missing catalog record id", http.StatusBadRequest)
		return
	}

	h.respond(w, r, &rec)
}

// HandleGet builds the catalog record from the path and query string:
// barcode and summary may repeat, journal is a boolean.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		http.Error(w, "missing catalog key", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	rec := &CatalogRecord{
		ID:              key,
		TitleStatement:  q.Get("title"),
		AuthorStatement: q.Get("author"),
		Summary:         q["summary"],
		BarcodeList:     q["barcode"],
	}
	if v := q.Get("journal"); v != "" {
		journal, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid journal flag", http.StatusBadRequest)
			return
		}
		rec.IsJournal = journal
	}

	h.respond(w, r, rec)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, doc Document) {
	a, err := h.service.Lookup(r.Context(), doc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		h.log.WarnContext(r.Context(), "availability lookup aborted", slog.String("key", doc.Key()), slog.String("error", err.Error()))
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.View()); err != nil {
		h.log.ErrorContext(r.Context(), "encode availability", slog.String("error", err.Error()))
	}
}

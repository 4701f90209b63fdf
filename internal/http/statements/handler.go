package statements

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vitalyzotov/gpb-module/internal/reconcile"
	"github.com/vitalyzotov/gpb-module/internal/statement/store"
)

type Handler struct {
	store       *store.Store
	reconcileSv *reconcile.Service
}

func NewHandler(st *store.Store, reconcileSvc *reconcile.Service) *Handler {
	return &Handler{
		store:       st,
		reconcileSv: reconcileSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upload)
	r.Post("/process", h.process)
}

type statementResponse struct {
	Name         string    `json:"name"`
	DiscoveredAt time.Time `json:"discovered_at"`
	Processed    bool      `json:"processed"`
}

type listResponse struct {
	Statements []statementResponse `json:"statements"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.FindAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	unprocessed, err := h.store.FindUnprocessed()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pending := make(map[string]struct{}, len(unprocessed))
	for _, id := range unprocessed {
		pending[id.Name] = struct{}{}
	}

	resp := listResponse{Statements: make([]statementResponse, 0, len(all))}

	for _, id := range all {
		_, isPending := pending[id.Name]
		resp.Statements = append(resp.Statements, statementResponse{
			Name:         id.Name,
			DiscoveredAt: id.DiscoveredAt,
			Processed:    !isPending,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type uploadResponse struct {
	Name         string    `json:"name"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := header.Filename
	if name == "" {
		http.Error(w, "file name is required", http.StatusBadRequest)
		return
	}

	id, err := h.store.Save(name, file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrAlreadyProcessed) {
			status = http.StatusConflict
		}

		http.Error(w, err.Error(), status)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(uploadResponse{Name: id.Name, DiscoveredAt: id.DiscoveredAt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	if err := h.reconcileSv.ProcessNewStatements(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

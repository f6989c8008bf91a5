// Package handler wires the POS catalog endpoints to the POS service. It is
// a thin transport layer; business logic stays in the service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campuscoffee/internal/pos/models"
	"campuscoffee/pkg/platform/httputil"
)

// Service defines the POS operations the handler depends on.
type Service interface {
	Clear(ctx context.Context) error
	GetAll(ctx context.Context) ([]models.Pos, error)
	GetByID(ctx context.Context, id int64) (models.Pos, error)
	Upsert(ctx context.Context, pos models.Pos) (models.Pos, error)
	ImportFromOsmNode(ctx context.Context, nodeID int64) (models.Pos, error)
}

// Handler serves the POS catalog HTTP API.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a POS handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the POS endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/pos", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/", h.handleClear)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Post("/import/osm/{nodeID}", h.handleImportFromOsm)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, all)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	pos, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pos)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, 0)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.upsert(w, r, id)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, id int64) {
	var req UpsertPosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	pos, err := req.ToPos(id)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	saved, err := h.service.Upsert(r.Context(), pos)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, saved)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleImportFromOsm(w http.ResponseWriter, r *http.Request) {
	nodeID, err := strconv.ParseInt(chi.URLParam(r, "nodeID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "node ID must be an integer")
		return
	}

	pos, err := h.service.ImportFromOsmNode(r.Context(), nodeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, pos)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error; its detail is logged, not
// returned.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		osmNotFound   *models.OsmNodeNotFoundError
		missingFields *models.OsmNodeMissingFieldsError
		duplicate     *models.DuplicatePosNameError
		posNotFound   *models.PosNotFoundError
	)
	switch {
	case errors.As(err, &osmNotFound):
		httputil.WriteError(w, http.StatusNotFound, "osm_node_not_found", err.Error())
	case errors.As(err, &missingFields):
		httputil.WriteError(w, http.StatusUnprocessableEntity, "osm_node_missing_fields", err.Error())
	case errors.As(err, &duplicate):
		httputil.WriteError(w, http.StatusConflict, "duplicate_pos_name", err.Error())
	case errors.As(err, &posNotFound):
		httputil.WriteError(w, http.StatusNotFound, "pos_not_found", err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pharmafinder/internal/rider/models"
	dErrors "pharmafinder/pkg/domain-errors"
	"pharmafinder/pkg/platform/httputil"
	"pharmafinder/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

// Service defines the rider operations exposed over HTTP.
type Service interface {
	CreateRider(ctx context.Context, caller models.Caller, req models.CreateRiderRequest) (*models.CreateRiderResult, error)
	GetRider(ctx context.Context, caller models.Caller, uid string) (*models.RiderProfile, error)
	AddAdmin(ctx context.Context, uid string) error
	Inventory(ctx context.Context) (*models.Inventory, error)
}

// Handler serves the createRider callable, the admin rider lookup and the
// ops admin endpoint.
type Handler struct {
	riders Service
	logger *slog.Logger
}

func New(riders Service, logger *slog.Logger) *Handler {
	return &Handler{riders: riders, logger: logger}
}

// Register mounts the caller-facing routes. The router must already resolve
// the caller identity (see auth.OptionalCaller).
func (h *Handler) Register(r chi.Router) {
	r.Post("/createRider", h.handleCreateRider)
	r.Get("/riders/{uid}", h.handleGetRider)
}

// RegisterOps mounts operator routes. The router must already be guarded by
// the ops token middleware.
func (h *Handler) RegisterOps(r chi.Router) {
	r.Post("/admins", h.handleAddAdmin)
	r.Get("/inventory", h.handleInventory)
}

type createRiderEnvelope struct {
	Data *models.CreateRiderRequest `json:"data"`
}

func (h *Handler) handleCreateRider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var envelope createRiderEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&envelope); err != nil {
		h.logger.WarnContext(ctx, "invalid createRider request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeCallableError(w, dErrors.New(dErrors.CodeInvalidArgument, "Request body must be a JSON object with a data field."))
		return
	}
	var req models.CreateRiderRequest
	if envelope.Data != nil {
		req = *envelope.Data
	}

	result, err := h.riders.CreateRider(ctx, callerFrom(ctx), req)
	if err != nil {
		h.logFailure(ctx, "createRider failed", err)
		writeCallableError(w, err)
		return
	}
	writeResult(w, result)
}

func (h *Handler) handleGetRider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := h.riders.GetRider(ctx, callerFrom(ctx), chi.URLParam(r, "uid"))
	if err != nil {
		h.logFailure(ctx, "get rider failed", err)
		writeCallableError(w, err)
		return
	}
	writeResult(w, profile)
}

type addAdminRequest struct {
	UID string `json:"uid"`
}

func (h *Handler) handleAddAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addAdminRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}
	if err := h.riders.AddAdmin(ctx, req.UID); err != nil {
		h.logFailure(ctx, "add admin failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inv, err := h.riders.Inventory(ctx)
	if err != nil {
		h.logFailure(ctx, "inventory failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inv)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"code", string(dErrors.CodeOf(err)),
		"error", err.Error(),
	}
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.InfoContext(ctx, msg, attrs...)
}

func callerFrom(ctx context.Context) models.Caller {
	return models.Caller{UID: requestcontext.CallerUID(ctx)}
}

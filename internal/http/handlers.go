package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"sort"
	"time"

	"game-data-service/internal/aggregate"
	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
	"game-data-service/internal/quota"
	"game-data-service/internal/registry"
	"game-data-service/internal/resolver"
)

// Handler wires HTTP routes to the aggregation engine.
type Handler struct {
	agg     *aggregate.Aggregator
	sched   *quota.Scheduler
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler constructs a Handler. A positive timeout bounds each query;
// upstream calls inherit the deadline through the request context.
func NewHandler(agg *aggregate.Aggregator, sched *quota.Scheduler, timeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{agg: agg, sched: sched, timeout: timeout, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness to serve queries.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// Query answers one logical game query: resolve the name, walk each field's
// fallback chain, and return the merged record with its chart intent.
func (h *Handler) Query(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid request body")
		return
	}
	if req.Game == "" {
		h.writeError(w, nethttp.StatusBadRequest, "game name is required")
		return
	}
	for _, f := range req.Fields {
		if !domain.IsKnownField(f) {
			h.writeError(w, nethttp.StatusBadRequest, "unknown field: "+string(f))
			return
		}
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	query := domain.Query{GameName: req.Game, Fields: req.Fields}
	result, err := h.agg.Query(ctx, query)
	if err != nil {
		h.writeQueryError(w, r, req.Game, result, err)
		return
	}

	requested := req.Fields
	if len(requested) == 0 {
		requested = domain.KnownFields()
	}
	h.writeJSON(w, nethttp.StatusOK, queryResponse{
		Record:   result.Record,
		Chart:    registry.Intent(result.Record, requested),
		Sources:  result.Record.Sources(),
		Failures: failureReport(result.FieldFailures),
	})
}

// Providers returns the quota usage snapshot for every registered budget.
func (h *Handler) Providers(w nethttp.ResponseWriter, r *nethttp.Request) {
	keys := h.sched.Keys()
	sort.Strings(keys)

	statuses := make([]providerStatus, 0, len(keys))
	for _, key := range keys {
		usage, ok := h.sched.Usage(key)
		if !ok {
			continue
		}
		statuses = append(statuses, providerStatus{Key: key, Usage: usage})
	}
	h.writeJSON(w, nethttp.StatusOK, providersResponse{Providers: statuses})
}

func (h *Handler) writeQueryError(w nethttp.ResponseWriter, r *nethttp.Request, game string, result aggregate.Result, err error) {
	logger := logging.FromContext(r.Context(), h.logger)
	logging.Warn(logger, "query failed", logging.FieldGame, game, "error", err)

	var resFailure *resolver.ResolutionFailure
	switch {
	// Checked before the not-found mapping: a resolution that failed because
	// the scheduler refused admission is starvation, not an unknown name.
	case errors.Is(err, quota.ErrQuotaExceeded):
		h.writeError(w, nethttp.StatusTooManyRequests, err.Error())
	case errors.As(err, &resFailure):
		h.writeError(w, nethttp.StatusNotFound, err.Error())
	case errors.Is(err, aggregate.ErrNoData):
		h.writeJSON(w, nethttp.StatusBadGateway, errorResponse{
			Error:    err.Error(),
			Failures: failureReport(result.FieldFailures),
		})
	default:
		h.writeError(w, nethttp.StatusBadRequest, err.Error())
	}
}

func failureReport(failures map[domain.FieldName]*aggregate.AllSourcesFailed) map[domain.FieldName][]aggregate.Attempt {
	if len(failures) == 0 {
		return nil
	}
	out := make(map[domain.FieldName][]aggregate.Attempt, len(failures))
	for field, failure := range failures {
		out[field] = failure.Attempts
	}
	return out
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

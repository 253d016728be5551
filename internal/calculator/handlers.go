package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints on top of a SessionStore.
type Handler struct {
	sessions *SessionStore
}

func NewHandler(sessions *SessionStore) *Handler {
	return &Handler{sessions: sessions}
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	_, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	id, state := h.sessions.Create()
	span.SetAttributes(attribute.String("calculator.session.id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	writeJSON(w, http.StatusCreated, newStateResponse(id, state))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	state, err := h.sessions.Get(id)
	if err != nil {
		recordSessionError(ctx, span, logger, "get", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	writeJSON(w, http.StatusOK, newStateResponse(id, state))
}

// PressKeys handles POST /calculator/sessions/{id}/keys — every mapped key is
// one transition on the session's state, applied in order.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	actions, ignored := mapKeys(ctx, req.Keys)

	state, err := h.sessions.Apply(id, actions...)
	if err != nil {
		recordSessionError(ctx, span, logger, "keys", err, w)
		return
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", "keys"))
	requestDuration.Record(ctx, elapsed, attrs)
	recordResult(ctx, actions, state, attrs)

	span.SetAttributes(
		attribute.Int("calculator.keys.applied", len(actions)),
		attribute.Int("calculator.keys.ignored", ignored),
		attribute.String("calculator.display", state.Display()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Debug("calculator keys applied",
		zap.String("session_id", id),
		zap.Int("applied", len(actions)),
		zap.Int("ignored", ignored),
		zap.String("display", state.Display()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	resp := newStateResponse(id, state)
	resp.Ignored = ignored
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := h.sessions.Delete(id); err != nil {
		recordSessionError(ctx, span, logger, "delete", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handler — stateless replay (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate — replays the keys on a fresh
// state, creating a child span for every key. No session is kept.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	// Parent span for the entire replay
	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("evaluate.keys_count", len(req.Keys)))

	start := time.Now()
	state := Initial()
	steps := make([]EvaluateStep, 0, len(req.Keys))
	applied := make([]Action, 0, len(req.Keys))
	ignored := 0

	for i, key := range req.Keys {
		// --- Child span per key ---
		_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.evaluate.key.%d", i),
			trace.WithAttributes(
				attribute.Int("evaluate.key.index", i),
				attribute.String("evaluate.key.name", key),
				attribute.String("evaluate.key.input", state.Display()),
			),
		)

		a, ok := ActionForKey(key)
		if !ok {
			ignored++
			keySpan.AddEvent("key.ignored")
			keySpan.End()
			continue
		}

		state = Transition(state, a)
		applied = append(applied, a)
		actionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("action", a.Kind().String())))

		keySpan.SetAttributes(
			attribute.String("evaluate.key.action", a.Kind().String()),
			attribute.String("evaluate.key.display", state.Display()),
		)
		keySpan.SetStatus(codes.Ok, "")
		keySpan.End()

		steps = append(steps, EvaluateStep{Key: key, Display: state.Display()})
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	attrs := metric.WithAttributes(attribute.String("operation", "evaluate"))
	requestDuration.Record(ctx, elapsed, attrs)
	recordResult(ctx, applied, state, attrs)

	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", state.Display()),
		attribute.Int("ignored", ignored),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator replay completed",
		zap.Int("keys", len(req.Keys)),
		zap.Int("ignored", ignored),
		zap.String("display", state.Display()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeJSON(w, http.StatusOK, EvaluateResponse{
		Steps:   steps,
		Display: state.Display(),
		Ignored: ignored,
	})
}

// mapKeys translates key names into actions, dropping keys without a keypad
// meaning.
func mapKeys(ctx context.Context, keys []string) ([]Action, int) {
	actions := make([]Action, 0, len(keys))
	ignored := 0
	for _, key := range keys {
		a, ok := ActionForKey(key)
		if !ok {
			ignored++
			continue
		}
		actionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("action", a.Kind().String())))
		actions = append(actions, a)
	}
	return actions, ignored
}

// recordResult publishes the shown value when the batch applied an operation
// and the value is finite.
func recordResult(ctx context.Context, actions []Action, s State, attrs metric.MeasurementOption) {
	computed := false
	for _, a := range actions {
		if a.Kind() == ActionOperation || a.Kind() == ActionEvaluate {
			computed = true
			break
		}
	}
	if !computed {
		return
	}

	v := ParseDisplay(s.Display())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	resultGauge.Record(ctx, v, attrs)
}

func recordSessionError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError
	msg := "internal error"
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
		msg = ErrSessionNotFound.Error()
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

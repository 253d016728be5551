package calculator

import (
	"net/http"

	"go-chi-calculator/internal/observability"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const maxKeyFrameBytes = 512

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Stream handles GET /calculator/ws. The connection owns an ephemeral session
// for its lifetime: the session is created once the upgrade succeeds and is
// deleted when the handler returns, whatever ended the connection.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "stream")))
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxKeyFrameBytes)

	id, state := h.sessions.Create()
	defer func() {
		_ = h.sessions.Delete(id)
		logger.Info("calculator stream closed", zap.String("session_id", id))
	}()

	logger.Info("calculator stream opened",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	if err := conn.WriteJSON(newStateResponse(id, state)); err != nil {
		return
	}

	for {
		var msg KeyMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("calculator stream read failed", zap.String("session_id", id), zap.Error(err))
			}
			return
		}

		actions, ignored := mapKeys(ctx, []string{msg.Key})
		state, err = h.sessions.Apply(id, actions...)
		if err != nil {
			logger.Warn("calculator stream session lost", zap.String("session_id", id), zap.Error(err))
			return
		}
		recordResult(ctx, actions, state, metric.WithAttributes(attribute.String("operation", "stream")))

		resp := newStateResponse(id, state)
		resp.Ignored = ignored
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

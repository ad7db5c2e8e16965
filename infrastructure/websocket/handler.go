package websocket

import (
	"chat-live/auth"
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/runtime"
	"context"
	errs "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Dispatcher runs one inbound frame of a session.
type Dispatcher interface {
	Dispatch(ctx context.Context, sink contract.EventSink, raw []byte) error
}

// Handler authenticates, upgrades and then serves a connection until
// either side closes it.
type Handler struct {
	log           *slog.Logger
	authenticator *auth.Authenticator
	registry      contract.IRegistry
	pipeline      Dispatcher
	monitor       *observability.MonitoringManager
	upgrader      websocket.Upgrader
	opts          Options
}

func NewHandler(
	log *slog.Logger,
	authenticator *auth.Authenticator,
	registry contract.IRegistry,
	pipeline Dispatcher,
	monitor *observability.MonitoringManager,
	origins *OriginPolicy,
	opts Options,
) *Handler {
	return &Handler{
		log:           log,
		authenticator: authenticator,
		registry:      registry,
		pipeline:      pipeline,
		monitor:       monitor,
		opts:          opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      origins.Check,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Identity is resolved before the upgrade: a refused client never
	// gets a websocket.
	identity, err := h.authenticator.Authenticate(r)
	if err != nil {
		h.authenticator.Reject(w, r, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		h.log.Warn("Upgrade failed", "user_id", identity.UserID, "remote", r.RemoteAddr, "error", err)
		return
	}
	h.serve(r.Context(), NewSession(conn, identity, h.log, h.opts))
}

func (h *Handler) serve(ctx context.Context, session *Session) {
	h.monitor.ConnectionOpened()
	go session.writePump()
	h.registry.Register(session)
	session.log.Info("Connection established")

	defer func() {
		// The session may already be superseded, Unregister then is a no-op
		h.registry.Unregister(session)
		session.Close(domain.CloseNormal)
		session.Wait()
		h.monitor.ConnectionClosed()
		session.log.Info("Connection closed")
	}()

	session.setupRead()
	for {
		messageType, raw, err := session.conn.ReadMessage()
		if err != nil {
			h.logReadError(session, err)
			return
		}
		if messageType != websocket.TextMessage {
			if err := session.Consume(ctx, protocol.Error(runtime.ReplyInvalidFormat)); err != nil {
				return
			}
			continue
		}
		h.dispatch(ctx, session, raw)
	}
}

func (h *Handler) dispatch(ctx context.Context, session *Session, raw []byte) {
	if h.opts.FrameTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.FrameTimeout)
		defer cancel()
	}
	// Failures were answered to the client and logged by the pipeline
	_ = h.pipeline.Dispatch(ctx, session, raw)
}

func (h *Handler) logReadError(session *Session, err error) {
	switch {
	case errs.Is(err, websocket.ErrReadLimit):
		session.log.Warn("Frame exceeded maximum size", "max", h.opts.MaxFrameSize)
	case isExpectedCloseError(err):
		session.log.Debug("Peer disconnected", "error", err)
	default:
		select {
		case <-session.Done():
			session.log.Debug("Read stopped after close", "error", err)
		default:
			session.log.Warn("Websocket read error", "error", err)
		}
	}
}

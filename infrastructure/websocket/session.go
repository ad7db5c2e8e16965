// Package websocket serves live chat connections over gorilla/websocket.
// Each connection is a Session: one goroutine reads frames and runs them
// through the pipeline, another one owns every write to the socket.
package websocket

import (
	"chat-live/domain"
	"chat-live/errors"
	"chat-live/protocol"
	"context"
	errs "errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	CloseCodeSuperseded = 4001
)

type Options struct {
	SendBuffer   int
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration
	MaxFrameSize int64
	// FrameTimeout bounds the store work triggered by one inbound frame
	FrameTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		SendBuffer:   256,
		WriteTimeout: 10 * time.Second,
		PongTimeout:  60 * time.Second,
		PingInterval: 54 * time.Second,
		MaxFrameSize: 64 * 1024,
		FrameTimeout: 5 * time.Second,
	}
}

// Session is the EventSink of one websocket connection.
type Session struct {
	id       string
	identity domain.Identity
	conn     *websocket.Conn
	log      *slog.Logger
	opts     Options

	send     chan []byte
	done     chan struct{}
	finished chan struct{}

	closeOnce sync.Once
	reason    domain.CloseReason
}

func NewSession(conn *websocket.Conn, identity domain.Identity, log *slog.Logger, opts Options) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		identity: identity,
		conn:     conn,
		log:      log.With("session_id", id, "user_id", identity.UserID),
		opts:     opts,
		send:     make(chan []byte, opts.SendBuffer),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Identity() domain.Identity { return s.identity }

// Consume queues evt for the writer. It never blocks: a full queue means
// the peer stopped reading, the session is closed and the event dropped.
func (s *Session) Consume(_ context.Context, evt protocol.Event) error {
	select {
	case <-s.done:
		return errors.ErrSessionClosed
	default:
	}
	payload, err := protocol.Encode(evt)
	if err != nil {
		return err
	}
	select {
	case s.send <- payload:
		return nil
	case <-s.done:
		return errors.ErrSessionClosed
	default:
		s.log.Warn("Send queue full, closing session", "capacity", cap(s.send), "type", evt.EventType())
		s.Close(domain.CloseBackpressure)
		return errors.ErrSessionBackpressure
	}
}

// Close asks the writer to send a close frame and drop the socket.
// Only the first reason is kept.
func (s *Session) Close(reason domain.CloseReason) {
	s.closeOnce.Do(func() {
		s.reason = reason
		close(s.done)
	})
}

// Done is closed once Close was called.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the writer released the socket.
func (s *Session) Wait() { <-s.finished }

func (s *Session) setupRead() {
	s.conn.SetReadLimit(s.opts.MaxFrameSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout)); err != nil {
		s.log.Debug("Error setting initial read deadline", "error", err)
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
	})
}

// writePump is the only goroutine writing on the socket.
func (s *Session) writePump() {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer func() {
		ticker.Stop()
		if err := s.conn.Close(); err != nil && !isExpectedCloseError(err) {
			s.log.Debug("Error closing connection", "error", err)
		}
		close(s.finished)
	}()

	for {
		select {
		case payload := <-s.send:
			if !s.write(websocket.TextMessage, payload) {
				s.Close(domain.CloseNormal)
				return
			}
		case <-ticker.C:
			if !s.write(websocket.PingMessage, nil) {
				s.Close(domain.CloseNormal)
				return
			}
		case <-s.done:
			s.writeClose()
			return
		}
	}
}

func (s *Session) write(messageType int, payload []byte) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
		s.log.Debug("Error setting write deadline", "error", err)
		return false
	}
	if err := s.conn.WriteMessage(messageType, payload); err != nil {
		if !isExpectedCloseError(err) {
			s.log.Warn("Error writing frame", "error", err)
		}
		return false
	}
	return true
}

func (s *Session) writeClose() {
	code, text := closeFrame(s.reason)
	deadline := time.Now().Add(s.opts.WriteTimeout)
	if err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline); err != nil &&
		!isExpectedCloseError(err) && !errs.Is(err, websocket.ErrCloseSent) {
		s.log.Debug("Error writing close frame", "error", err)
	}
	s.log.Debug("Session closed", "reason", s.reason.String(), "code", code)
}

func closeFrame(reason domain.CloseReason) (int, string) {
	switch reason {
	case domain.CloseSuperseded:
		return CloseCodeSuperseded, "session superseded"
	case domain.CloseBackpressure:
		return websocket.ClosePolicyViolation, "send queue full"
	case domain.CloseShutdown:
		return websocket.CloseGoingAway, "server shutting down"
	default:
		return websocket.CloseNormalClosure, ""
	}
}

func isExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errs.Is(err, net.ErrClosed) || errs.Is(err, io.EOF) {
		return true
	}
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
		CloseCodeSuperseded)
}

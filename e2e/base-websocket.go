package e2e

import (
	"chat-live/auth"
	"chat-live/domain"
	"chat-live/protocol"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseWebsocketSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests.
// Without CHAT_ADDR there is no server to talk to and the suite is skipped.
func (s *BaseWebsocketSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ChatAddr == "" || s.Config.JWTSecret == "" {
		s.T().Skip("CHAT_ADDR and JWT_SECRET are required for the e2e suite")
	}
}

// Client is one authenticated connection to the running server.
type Client struct {
	t      *testing.T
	name   string
	conn   *websocket.Conn
	config Config
}

// Connect dials the server as identity, printing a colorized header for
// the step in the logs.
func (s *BaseWebsocketSuite) Connect(t *testing.T, name string, identity domain.Identity) *Client {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	token, err := auth.NewTokenManager(s.Config.JWTSecret, s.Config.JWTIssuer, time.Hour).GenerateToken(identity)
	s.Require().NoError(err)

	h := http.Header{}
	h.Set("Cookie", auth.CookieName+"="+token)
	conn, _, err := websocket.DefaultDialer.Dial(s.Config.ChatAddr, h)
	s.Require().NoError(err, "Failed to connect to chat server at "+s.Config.ChatAddr)

	c := &Client{t: t, name: name, conn: conn, config: s.Config}
	// The Pong proves the server registered the connection
	c.Send(protocol.Ping{})
	c.Expect(protocol.TypePong)
	return c
}

func (c *Client) Close() { _ = c.conn.Close() }

func (c *Client) Send(action protocol.Action) {
	raw, err := protocol.EncodeAction(action)
	if err != nil {
		c.t.Fatalf("%s: encode %s: %v", c.name, action.ActionType(), err)
	}
	if c.config.DebugJSON {
		c.t.Logf("%s -> %s", c.name, raw)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		c.t.Fatalf("%s: write: %v", c.name, err)
	}
}

// Expect reads frames until one of eventType arrives. Presence frames
// from other test clients are skipped.
func (c *Client) Expect(eventType string) protocol.Event {
	deadline := time.Now().Add(5 * time.Second)
	for {
		_ = c.conn.SetReadDeadline(deadline)
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("%s: waiting for %s: %v", c.name, eventType, err)
		}
		if c.config.DebugJSON {
			c.t.Logf("%s <- %s", c.name, raw)
		}
		evt, err := protocol.DecodeEvent(raw)
		if err != nil {
			c.t.Fatalf("%s: decode %s: %v", c.name, raw, err)
		}
		if evt.EventType() == eventType {
			return evt
		}
	}
}

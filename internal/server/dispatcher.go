package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	"meetup-backend/internal/protocol"
)

// conn is the per-connection state machine. Frames are processed strictly in
// order: each one is decoded, routed, handled and answered before the next
// read, so every request gets exactly one response and responses arrive in
// request order.
type conn struct {
	ws       *websocket.Conn
	handlers *Handlers
	log      *slog.Logger

	// token is the session this connection has established via a successful
	// signup, login or token resume; empty until then.
	token string
}

// run drives the read loop until the peer disconnects. Per-message failures
// of any sort degrade to an INVALID response; only a transport error ends
// the loop.
func (c *conn) run(ctx context.Context) {
	defer c.disconnect()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("connection closed unexpectedly", "err", err)
			} else {
				c.log.Debug("connection closed", "err", err)
			}
			return
		}

		resp := c.handleFrame(ctx, data)

		out, err := protocol.Encode(resp)
		if err != nil {
			c.log.Error("encoding response", "kind", resp.Type, "err", err)
			continue
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, out); err != nil {
			c.log.Warn("writing response", "err", err)
			return
		}
	}
}

// handleFrame turns one inbound frame into exactly one response. A panic in
// a handler is converted to an INVALID "internal error" response so a single
// bug-triggering message never takes the connection down.
func (c *conn) handleFrame(ctx context.Context, data []byte) (resp *protocol.Response) {
	uuid := ""
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic while handling frame", "panic", r)
			resp = protocol.Invalid(uuid, "internal error")
		}
	}()

	req, salvaged, err := protocol.Decode(data)
	uuid = salvaged
	if err != nil {
		c.log.Warn("rejecting frame", "err", err)
		return protocol.Invalid(uuid, decodeReason(err))
	}

	var established string
	switch req.Kind {
	case protocol.KindSignup:
		resp, established = c.handlers.Signup(ctx, req.UUID, req.Signup)
	case protocol.KindLogin:
		resp, established = c.handlers.Login(ctx, req.UUID, req.Login)
	case protocol.KindToken:
		resp, established = c.handlers.Token(ctx, req.UUID, req.Token)
	case protocol.KindHeartbeat:
		resp, established = c.handlers.Heartbeat(ctx, req.UUID, req.Heartbeat)
	default:
		// Known on the wire but not routed, e.g. the reserved CREATE_EVENT.
		return protocol.Failure(req.Kind, req.UUID, "not implemented")
	}

	if established != "" {
		c.token = established
	}
	return resp
}

// disconnect records the session's last activity so a later TOKEN request
// can resume it after the transport is gone.
func (c *conn) disconnect() {
	if c.token != "" {
		c.handlers.sessions.Touch(c.token)
	}
}

func decodeReason(err error) string {
	if errors.Is(err, protocol.ErrUnknownMessageKind) {
		return "Invalid message type"
	}
	return "Invalid message payload"
}

// Package server hosts the websocket endpoint and the per-connection
// dispatcher that routes protocol messages to the auth handlers.
package server

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server owns the echo application and the shared handler set.
type Server struct {
	echo     *echo.Echo
	handlers *Handlers
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// New builds the echo application with its middleware and routes.
func New(handlers *Handlers, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		handlers: handlers,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client connects from its own origin; session
			// tokens, not the origin, gate access.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	e.GET("/health", s.healthCheck)
	e.GET("/ws", s.handleWebSocket)

	return s
}

// Start serves plain websocket traffic on addr, or TLS-wrapped traffic when
// tlsCfg is non-nil. It blocks until Shutdown or a listener error.
func (s *Server) Start(addr string, tlsCfg *tls.Config) error {
	if tlsCfg == nil {
		return s.echo.Start(addr)
	}
	s.echo.TLSServer.Addr = addr
	s.echo.TLSServer.TLSConfig = tlsCfg
	return s.echo.StartServer(s.echo.TLSServer)
}

// Shutdown stops accepting connections and waits for in-flight handlers
// within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebSocket upgrades the request and runs the connection's dispatch
// loop until the peer goes away.
func (s *Server) handleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", c.RealIP(), "err", err)
		return err
	}
	defer ws.Close()

	log := s.log.With("remote", c.RealIP())
	log.Info("client connected")

	cn := &conn{ws: ws, handlers: s.handlers, log: log}
	cn.run(c.Request().Context())

	log.Info("client disconnected")
	return nil
}

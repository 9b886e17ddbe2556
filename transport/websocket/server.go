package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

// sessionManager is the orchestration engine the transport feeds decoded
// messages into.
type sessionManager interface {
	Connect(ctx context.Context, conn entity.Sender) *entity.Player
	HandleMessage(ctx context.Context, player *entity.Player, raw string)
	Disconnect(ctx context.Context, player *entity.Player)
}

type Server struct {
	logger  *slog.Logger
	manager sessionManager
}

func New(logger *slog.Logger, manager sessionManager) *Server {
	return &Server{
		logger:  logger,
		manager: manager,
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	return that.Serve(ctx, listener)
}

// Serve - serves upgrade requests on an existing listener.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.Serve(listener); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// upgradeToWebSocket - answers the handshake on a hijacked connection and
// hands the socket to a Conn. A request without a handshake key gets its
// socket dropped before any protocol object exists.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sock, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	if key == "" {
		log.Info("handshake key missing, dropping socket")
		_ = sock.Close()
		return
	}

	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + pkg.GenerateAcceptKey(key) + "\r\n\r\n"

	if _, err = sock.Write([]byte(response)); err != nil {
		log.Error("failed to write handshake response", "error", err)
		_ = sock.Close()
		return
	}

	log.Info("WebSocket connection established")

	conn := NewConn(that.logger, sock, bufrw.Reader)
	player := that.manager.Connect(ctx, conn)

	conn.OnMessage(func(msg string) {
		that.manager.HandleMessage(ctx, player, msg)
	})
	conn.OnClose(func() {
		that.manager.Disconnect(ctx, player)
	})

	conn.ReadLoop()
}

package servers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/cbodonnell/wordduel/pkg/log"
	"nhooyr.io/websocket"
)

// WSServer accepts player connections over WebSocket. Each accepted
// socket is adapted to a net.Conn so the same line-protocol sessions serve
// both transports.
type WSServer struct {
	port     int
	slots    *SlotManager
	sessions SessionRunner
	server   *http.Server
}

type NewWSServerOptions struct {
	Port     int
	Slots    *SlotManager
	Sessions SessionRunner
}

func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:     opts.Port,
		slots:    opts.Slots,
		sessions: opts.Sessions,
	}
}

// Start serves WebSocket upgrades until the context is cancelled.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", r.RemoteAddr)

		s.handleConnection(ctx, websocket.NetConn(ctx, c, websocket.MessageText))
	})

	addr := fmt.Sprintf(":%d", s.port)
	s.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		s.server.Shutdown(context.Background())
	}()

	log.Info("WebSocket server listening on %s", addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

func (s *WSServer) handleConnection(ctx context.Context, conn net.Conn) {
	slot, ok := s.slots.Acquire()
	if !ok {
		log.Debug("Rejecting WebSocket connection: server full")
		fmt.Fprintf(conn, "ERR server full\n")
		conn.Close()
		return
	}

	log.Info("WebSocket connection assigned player slot %d", slot)
	defer func() {
		s.slots.Release(slot)
		log.Info("WebSocket connection closed for player slot %d", slot)
	}()

	s.sessions.Run(ctx, slot, conn)
}

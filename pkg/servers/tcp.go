// Package servers holds the player-facing transports. Each accepted
// connection is assigned a player slot and handed to a session runner; the
// transports know nothing about the game itself.
package servers

import (
	"context"
	"fmt"
	"net"

	"github.com/cbodonnell/wordduel/pkg/log"
)

// SessionRunner drives one player session over a connection. It returns
// when the session ends.
type SessionRunner interface {
	Run(ctx context.Context, slot int, conn net.Conn)
}

// TCPServer accepts player connections over TCP.
type TCPServer struct {
	port     string
	slots    *SlotManager
	sessions SessionRunner
	listener *net.TCPListener
}

type NewTCPServerOptions struct {
	Port     string
	Slots    *SlotManager
	Sessions SessionRunner
}

func NewTCPServer(opts NewTCPServerOptions) *TCPServer {
	return &TCPServer{
		port:     opts.Port,
		slots:    opts.Slots,
		sessions: opts.Sessions,
	}
}

// Listen binds the listening socket. Callers treat an error as fatal.
func (s *TCPServer) Listen() error {
	tcpAddr, err := net.ResolveTCPAddr("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("failed to resolve TCP address: %w", err)
	}

	listener, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", tcpAddr.String(), err)
	}
	s.listener = listener

	log.Info("TCP server listening on %s", tcpAddr.String())
	return nil
}

// Serve runs the accept loop until the context is cancelled. Listen must
// have succeeded first.
func (s *TCPServer) Serve(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("Failed to accept TCP connection: %v", err)
			continue
		}

		go s.handleConnection(ctx, conn)
	}
}

func (s *TCPServer) handleConnection(ctx context.Context, conn net.Conn) {
	slot, ok := s.slots.Acquire()
	if !ok {
		log.Debug("Rejecting connection from %s: server full", conn.RemoteAddr())
		fmt.Fprintf(conn, "ERR server full\n")
		conn.Close()
		return
	}

	log.Info("TCP connection from %s assigned player slot %d", conn.RemoteAddr(), slot)
	defer func() {
		s.slots.Release(slot)
		log.Info("TCP connection closed for player slot %d", slot)
	}()

	s.sessions.Run(ctx, slot, conn)
}

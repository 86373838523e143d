// Package session runs the per-player protocol dialogue: one handler per
// connected player, each applying validated actions to the shared state.
package session

import (
	"context"
	"net"

	"github.com/cbodonnell/wordduel/pkg/eventlog"
	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/gates"
	"github.com/cbodonnell/wordduel/pkg/log"
	"github.com/cbodonnell/wordduel/pkg/protocol"
	"github.com/cbodonnell/wordduel/pkg/queue"
	"github.com/cbodonnell/wordduel/pkg/scores"
	"github.com/google/uuid"
)

// Factory builds a Handler per accepted connection. It satisfies the
// transport servers' SessionRunner.
type Factory struct {
	State    *game.StateManager
	Gates    *gates.TurnGates
	Outboxes [types.NumPlayers]*queue.Outbox
	Scores   *scores.Keeper
	Events   *eventlog.Logger
}

type NewFactoryOptions struct {
	State    *game.StateManager
	Gates    *gates.TurnGates
	Outboxes [types.NumPlayers]*queue.Outbox
	Scores   *scores.Keeper
	Events   *eventlog.Logger
}

func NewFactory(opts NewFactoryOptions) *Factory {
	return &Factory{
		State:    opts.State,
		Gates:    opts.Gates,
		Outboxes: opts.Outboxes,
		Scores:   opts.Scores,
		Events:   opts.Events,
	}
}

// Run drives one player session to completion.
func (f *Factory) Run(ctx context.Context, slot int, conn net.Conn) {
	h := &Handler{
		slot:      slot,
		conn:      protocol.NewConn(conn),
		state:     f.State,
		gates:     f.Gates,
		outboxes:  f.Outboxes,
		scores:    f.Scores,
		events:    f.Events,
		sessionID: uuid.New().String(),
	}
	h.run(ctx)
}

// Handler holds one player's session: its connection, slot, and views of
// the shared subsystems.
type Handler struct {
	slot      int
	conn      *protocol.Conn
	state     *game.StateManager
	gates     *gates.TurnGates
	outboxes  [types.NumPlayers]*queue.Outbox
	scores    *scores.Keeper
	events    *eventlog.Logger
	sessionID string
	name      string

	// inbox carries lines from the reader pump; it is closed when the
	// peer goes away, so a disconnect is visible even while the handler
	// is parked on its turn gate.
	inbox   chan string
	readErr error
}

// startReader pumps incoming lines into the inbox until the connection
// dies, then closes it.
func (h *Handler) startReader() {
	h.inbox = make(chan string, 16)
	go func() {
		defer close(h.inbox)
		for {
			line, err := h.conn.ReadLine()
			if err != nil {
				h.readErr = err
				return
			}
			h.inbox <- line
		}
	}()
}

// readLine takes the next line from the inbox.
func (h *Handler) readLine() (string, error) {
	line, ok := <-h.inbox
	if !ok {
		return "", h.closedErr()
	}
	return line, nil
}

func (h *Handler) closedErr() error {
	if h.readErr != nil {
		return h.readErr
	}
	return &protocol.ErrConnectionClosed{}
}

func (h *Handler) run(ctx context.Context) {
	defer h.conn.Close()

	if err := h.conn.WriteLine(protocol.Welcome); err != nil {
		log.Debug("Session %s: failed to greet: %v", h.sessionID, err)
		return
	}
	h.startReader()

	line, err := h.readLine()
	if err != nil {
		log.Debug("Session %s: closed before identifying: %v", h.sessionID, err)
		return
	}
	name, err := protocol.ParseName(line)
	if err != nil {
		h.conn.WriteLine(protocol.FormatErr(err.Error()))
		return
	}
	h.name = name

	h.state.Update(func(s *types.GameState) {
		s.Connected[h.slot] = true
		s.PlayerNames[h.slot] = name
	})
	h.events.Printf("Player %d connected as '%s' (session %s).", h.slot, name, h.sessionID)

	defer func() {
		h.state.Update(func(s *types.GameState) {
			s.Connected[h.slot] = false
			// release the turn gate flag so nothing wedges on this slot
			s.TurnGated = false
		})
		h.gates.Drain(h.slot)
		h.events.Printf("Player %d disconnected.", h.slot)
	}()

	if err := h.conn.WriteLine(protocol.FormatRole(h.slot)); err != nil {
		return
	}
	if err := h.conn.WriteLine(protocol.RoleInfo(h.slot)); err != nil {
		return
	}

	if h.slot == types.SlotWordmaster {
		err = h.runWordmaster(ctx)
	} else {
		err = h.runGuesser(ctx)
	}
	if err != nil && !protocol.IsConnectionClosed(err) && ctx.Err() == nil {
		log.Debug("Session %s (player %d) ended: %v", h.sessionID, h.slot, err)
	}
}

// waitTurn blocks until this slot's gate opens, draining the slot's
// outbound broadcast queue to the socket while waiting. Lines sent out of
// turn are answered with an error so the inbox keeps flowing.
func (h *Handler) waitTurn(ctx context.Context) error {
	for {
		if err := h.flushOutbox(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.gates.Wait(h.slot):
			// broadcasts queued before the gate opened go out first
			return h.flushOutbox()
		case line := <-h.outboxes[h.slot].Lines():
			if err := h.conn.WriteLine(line); err != nil {
				return err
			}
		case _, ok := <-h.inbox:
			if !ok {
				return h.closedErr()
			}
			if err := h.conn.WriteLine(protocol.FormatErr("not your turn")); err != nil {
				return err
			}
		}
	}
}

// flushOutbox writes every queued broadcast line without blocking.
func (h *Handler) flushOutbox() error {
	for {
		select {
		case line := <-h.outboxes[h.slot].Lines():
			if err := h.conn.WriteLine(line); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// broadcastOthers enqueues a line to every other player's outbox. The
// producer never blocks; a full outbox drops the newest line.
func (h *Handler) broadcastOthers(line string) {
	for slot, outbox := range h.outboxes {
		if slot == h.slot || outbox == nil {
			continue
		}
		if !outbox.Enqueue(line) {
			log.Warn("Outbox for player %d full, dropped broadcast line", slot)
		}
	}
}

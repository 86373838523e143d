package session

import (
	"context"
	"fmt"

	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/protocol"
)

// runWordmaster waits on gate 0 and installs a secret word each time a
// match needs one. Re-promptable errors never mutate state.
func (h *Handler) runWordmaster(ctx context.Context) error {
	for {
		if err := h.waitTurn(ctx); err != nil {
			return err
		}

		var connected, waitingWord bool
		h.state.View(func(s *types.GameState) {
			connected = s.Connected[h.slot]
			waitingWord = s.Phase == types.PhaseWaitingWord
		})
		if !connected {
			return nil
		}
		if !waitingWord {
			// spurious wake: the gate can open across a phase change
			continue
		}

		if err := h.conn.WriteLine(protocol.EnterWord); err != nil {
			return err
		}

		if err := h.collectWord(); err != nil {
			return err
		}
	}
}

// collectWord reads lines until a valid WORD arrives, then performs the
// WaitingWord to InProgress transition atomically.
func (h *Handler) collectWord() error {
	for {
		line, err := h.readLine()
		if err != nil {
			return err
		}

		raw, err := protocol.ParseWord(line)
		if err != nil {
			if werr := h.conn.WriteLine(protocol.FormatErr(err.Error())); werr != nil {
				return werr
			}
			continue
		}

		word, err := game.NormalizeWord(raw)
		if err != nil {
			reason := fmt.Sprintf("word must be exactly %d letters A-Z, try again", types.WordLength)
			if werr := h.conn.WriteLine(protocol.FormatErr(reason)); werr != nil {
				return werr
			}
			continue
		}

		var gameNumber int
		h.state.Update(func(s *types.GameState) {
			game.StartMatch(s, word)
			gameNumber = s.GameNumber
		})
		h.events.Printf("Wordmaster set secret word for game #%d.", gameNumber)

		return h.conn.WriteLine(protocol.FormatOK("Word accepted. Game started."))
	}
}

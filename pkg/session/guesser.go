package session

import (
	"context"

	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/log"
	"github.com/cbodonnell/wordduel/pkg/protocol"
)

// runGuesser waits on this slot's gate and applies one validated guess per
// turn to the shared state.
func (h *Handler) runGuesser(ctx context.Context) error {
	for {
		if err := h.waitTurn(ctx); err != nil {
			return err
		}

		// Defensive re-check against races between wake and lock
		// acquisition: the phase or turn may have moved under us.
		var connected, myTurn bool
		var pass, pos int
		var display string
		h.state.View(func(s *types.GameState) {
			connected = s.Connected[h.slot]
			myTurn = s.Phase == types.PhaseInProgress && s.CurrentTurn == h.slot
			pass = s.PassNumber
			pos = s.PositionIndex
			display = s.Display
		})
		if !connected {
			return nil
		}
		if !myTurn {
			continue
		}

		if err := h.conn.WriteLine(protocol.FormatYourTurn(pass, pos, display)); err != nil {
			return err
		}

		letter, err := h.collectGuess()
		if err != nil {
			return err
		}

		if err := h.applyGuess(ctx, letter); err != nil {
			return err
		}
	}
}

// collectGuess reads lines until a valid single-letter GUESS arrives, so a
// malformed line can never stall the scheduler.
func (h *Handler) collectGuess() (byte, error) {
	for {
		line, err := h.readLine()
		if err != nil {
			return 0, err
		}

		raw, err := protocol.ParseGuess(line)
		if err != nil {
			if werr := h.conn.WriteLine(protocol.FormatErr(err.Error())); werr != nil {
				return 0, werr
			}
			continue
		}

		letter, err := game.NormalizeLetter(raw)
		if err != nil {
			if werr := h.conn.WriteLine(protocol.FormatErr("guess must be a single letter A-Z")); werr != nil {
				return 0, werr
			}
			continue
		}

		return letter, nil
	}
}

func (h *Handler) applyGuess(ctx context.Context, letter byte) error {
	var out game.GuessOutcome
	var raced bool
	var gameNumber int
	var winnerName string
	var stateLine, gameOverLine string
	h.state.Update(func(s *types.GameState) {
		if s.Phase != types.PhaseInProgress || s.CurrentTurn != h.slot {
			// lost the race after waking; let the scheduler move on
			s.TurnGated = false
			raced = true
			return
		}
		out = game.ApplyGuess(s, h.slot, letter)
		gameNumber = s.GameNumber
		if out.GameOver && out.Winner != 0 {
			winnerName = s.PlayerNames[out.Winner]
		}

		stateLine = protocol.StateLine{
			From:     out.From,
			Pass:     out.Pass,
			Pos:      out.Pos,
			Guess:    out.Letter,
			Result:   out.Result,
			Display:  out.Display,
			ScoreA:   out.ScoreA,
			ScoreB:   out.ScoreB,
			NextPass: out.NextPass,
			NextPos:  out.NextPos,
			Turn:     out.Turn,
		}.String()
		if out.GameOver {
			gameOverLine = protocol.GameOverLine{
				Word:    out.Secret,
				Display: out.Display,
				Passes:  out.Passes,
				ScoreA:  out.ScoreA,
				ScoreB:  out.ScoreB,
				Winner:  out.Winner,
			}.String()
		}

		// Enqueue before the turn flag release becomes visible so the
		// next player drains these lines ahead of its turn prompt.
		h.broadcastOthers(stateLine)
		if out.GameOver {
			h.broadcastOthers(gameOverLine)
		}
	})
	if raced {
		return h.conn.WriteLine(protocol.FormatErr("not your turn"))
	}

	h.events.Printf("Player %d guessed '%c' for pos %d -> %s (scoreA=%d scoreB=%d)",
		h.slot, out.Letter, out.Pos+1, out.Result, out.ScoreA, out.ScoreB)

	// self gets the line directly, the other players via their outboxes
	if err := h.conn.WriteLine(stateLine); err != nil {
		return err
	}

	if !out.GameOver {
		return nil
	}

	if err := h.scores.RecordWin(ctx, out.Winner, winnerName); err != nil {
		log.Error("Failed to record win for player %d: %v", out.Winner, err)
	}

	h.events.Printf("Game #%d over: winner=%s (scoreA=%d scoreB=%d)",
		gameNumber, protocol.WinnerString(out.Winner), out.ScoreA, out.ScoreB)

	return h.conn.WriteLine(gameOverLine)
}

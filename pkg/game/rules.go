package game

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// NormalizeWord upper-cases a candidate secret word and validates it:
// exactly WordLength letters A-Z.
func NormalizeWord(word string) (string, error) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if len(word) != types.WordLength {
		return "", fmt.Errorf("word must be exactly %d letters", types.WordLength)
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return "", fmt.Errorf("word must contain only letters A-Z")
		}
	}
	return word, nil
}

// NormalizeLetter upper-cases a guessed letter and validates it as a
// single A-Z character.
func NormalizeLetter(guess string) (byte, error) {
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != 1 {
		return 0, fmt.Errorf("guess must be a single letter")
	}
	c := guess[0]
	if c < 'A' || c > 'Z' {
		return 0, fmt.Errorf("guess must be a letter A-Z")
	}
	return c, nil
}

// ScoreGuess classifies letter against word at position pos.
// The three results are mutually exclusive and exhaustive: CORRECT iff the
// letter matches at pos, PRESENT iff it occurs elsewhere in the word,
// ABSENT otherwise.
func ScoreGuess(word string, pos int, letter byte) types.LetterResult {
	if word[pos] == letter {
		return types.ResultCorrect
	}
	if strings.IndexByte(word, letter) >= 0 {
		return types.ResultPresent
	}
	return types.ResultAbsent
}

// Revealed reports whether the display mask has no hidden positions left.
func Revealed(display string) bool {
	return !strings.ContainsRune(display, '_')
}

// Winner returns the winning guesser slot for the given scores, or 0 on a draw.
func Winner(scoreA, scoreB int) int {
	switch {
	case scoreA > scoreB:
		return types.SlotGuesser1
	case scoreB > scoreA:
		return types.SlotGuesser2
	default:
		return 0
	}
}

// StartMatch installs the secret word and performs the WaitingWord to
// InProgress transition. The caller must hold the state mutex.
func StartMatch(s *types.GameState, word string) {
	s.SecretWord = word
	s.Display = types.HiddenDisplay()
	s.PositionIndex = 0
	s.PassNumber = 0
	s.Scores[types.SlotGuesser1] = 0
	s.Scores[types.SlotGuesser2] = 0
	s.CurrentTurn = types.SlotGuesser1
	s.TurnGated = false
	s.Phase = types.PhaseInProgress
}

// ResetForNextMatch clears per-match state after a game while preserving
// cumulative data, and returns the match to WaitingWord so the wordmaster
// can be re-prompted. The caller must hold the state mutex.
func ResetForNextMatch(s *types.GameState) {
	s.SecretWord = ""
	s.Display = types.HiddenDisplay()
	s.PositionIndex = 0
	s.PassNumber = 0
	s.Scores[types.SlotGuesser1] = 0
	s.Scores[types.SlotGuesser2] = 0
	s.CurrentTurn = types.SlotWordmaster
	s.TurnGated = false
	s.GameNumber++
	s.Phase = types.PhaseWaitingWord
}

// GuessOutcome is a snapshot of one applied guess, taken under the state
// mutex so callers can format protocol lines without re-locking.
type GuessOutcome struct {
	From   int
	Pass   int // 0-based, before the guess
	Pos    int // 0-based, before the guess
	Letter byte
	Result types.LetterResult

	Display string
	ScoreA  int
	ScoreB  int

	NextPass int
	NextPos  int
	// Turn is the slot to act next, or 0 if the match ended.
	Turn int

	GameOver bool
	Secret   string
	Passes   int
	// Winner is the winning slot when GameOver, 0 on a draw.
	Winner int
}

// ApplyGuess applies one validated guess for the given slot: scores it,
// reveals the position on a correct guess, advances position and pass,
// checks for end of game and swaps the turn. It releases the scheduler's
// turn gate flag. The caller must hold the state mutex and have verified
// that it is this slot's turn.
func ApplyGuess(s *types.GameState, slot int, letter byte) GuessOutcome {
	out := GuessOutcome{
		From:   slot,
		Pass:   s.PassNumber,
		Pos:    s.PositionIndex,
		Letter: letter,
		Result: ScoreGuess(s.SecretWord, s.PositionIndex, letter),
	}

	if out.Result == types.ResultCorrect {
		s.Scores[slot]++
		display := []byte(s.Display)
		display[s.PositionIndex] = letter
		s.Display = string(display)
	}

	// One guess per (position, turn): advance unconditionally.
	s.PositionIndex++
	if s.PositionIndex >= types.WordLength {
		s.PositionIndex = 0
		s.PassNumber++
	}

	if Revealed(s.Display) || s.PassNumber >= types.MaxPasses {
		s.Phase = types.PhaseGameOver
	} else {
		if slot == types.SlotGuesser1 {
			s.CurrentTurn = types.SlotGuesser2
		} else {
			s.CurrentTurn = types.SlotGuesser1
		}
	}

	// Let the scheduler open the next gate (or the reset cycle proceed).
	s.TurnGated = false

	out.Display = s.Display
	out.ScoreA = s.Scores[types.SlotGuesser1]
	out.ScoreB = s.Scores[types.SlotGuesser2]
	out.NextPass = s.PassNumber
	out.NextPos = s.PositionIndex
	if s.Phase == types.PhaseInProgress {
		out.Turn = s.CurrentTurn
	}
	out.GameOver = s.Phase == types.PhaseGameOver
	out.Secret = s.SecretWord
	out.Passes = s.PassNumber
	out.Winner = Winner(out.ScoreA, out.ScoreB)
	if !out.GameOver {
		out.Winner = 0
	}

	return out
}

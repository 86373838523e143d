// Package protocol implements the newline-terminated text protocol spoken
// between the game server and its clients.
package protocol

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// Client to server verbs.
const (
	prefixName  = "NAME "
	prefixWord  = "WORD "
	prefixGuess = "GUESS "
)

// Welcome is the greeting sent to every new connection.
const Welcome = "WELCOME Please identify: NAME yourname"

// FormatRole renders the role-assignment line for a slot.
func FormatRole(slot int) string {
	if slot == types.SlotWordmaster {
		return "ROLE WORDMASTER"
	}
	return fmt.Sprintf("ROLE GUESSER %d", slot)
}

// RoleInfo returns the usage hint sent right after a role assignment.
func RoleInfo(slot int) string {
	if slot == types.SlotWordmaster {
		return fmt.Sprintf("INFO You will enter a %d-letter secret word (A-Z).", types.WordLength)
	}
	return fmt.Sprintf("INFO You will guess letters (A-Z) for each position 1..%d when prompted: GUESS X", types.WordLength)
}

// EnterWord prompts the wordmaster for the next secret word.
const EnterWord = "ENTER_WORD Please send: WORD ABCDE"

// FormatOK renders a success acknowledgment.
func FormatOK(msg string) string {
	return "OK " + msg
}

// FormatErr renders a protocol error. State is never mutated on an ERR path.
func FormatErr(reason string) string {
	return "ERR " + reason
}

// FormatYourTurn prompts a guesser. pass and pos are 0-based internally and
// rendered 1-based on the wire.
func FormatYourTurn(pass, pos int, display string) string {
	return fmt.Sprintf("YOUR_TURN pass=%d/%d pos=%d display=%s (send: GUESS X)",
		pass+1, types.MaxPasses, pos+1, display)
}

// StateLine is the broadcast sent to every player after an applied guess.
// Pass/Pos/NextPass/NextPos are 0-based and rendered 1-based. Turn is 0
// when the match ended.
type StateLine struct {
	From     int
	Pass     int
	Pos      int
	Guess    byte
	Result   types.LetterResult
	Display  string
	ScoreA   int
	ScoreB   int
	NextPass int
	NextPos  int
	Turn     int
}

func (l StateLine) String() string {
	return fmt.Sprintf(
		"STATE from=%d pass=%d/%d pos=%d guess=%c result=%s display=%s scoreA=%d scoreB=%d next_pass=%d/%d next_pos=%d turn=%d",
		l.From,
		l.Pass+1, types.MaxPasses,
		l.Pos+1,
		l.Guess,
		l.Result,
		l.Display,
		l.ScoreA, l.ScoreB,
		l.NextPass+1, types.MaxPasses,
		l.NextPos+1,
		l.Turn,
	)
}

// GameOverLine is broadcast once per finished match.
type GameOverLine struct {
	Word    string
	Display string
	Passes  int
	ScoreA  int
	ScoreB  int
	Winner  int // guesser slot, 0 for a draw
}

func (l GameOverLine) String() string {
	return fmt.Sprintf("GAME_OVER word=%s display=%s passes=%d scoreA=%d scoreB=%d winner=%s",
		l.Word, l.Display, l.Passes, l.ScoreA, l.ScoreB, WinnerString(l.Winner))
}

// WinnerString maps a winning slot to its wire token.
func WinnerString(winner int) string {
	switch winner {
	case types.SlotGuesser1:
		return "PLAYER1"
	case types.SlotGuesser2:
		return "PLAYER2"
	default:
		return "DRAW"
	}
}

// ParseName extracts the display name from a "NAME <text>" line.
func ParseName(line string) (string, error) {
	name, err := parsePayload(line, prefixName)
	if err != nil {
		return "", fmt.Errorf("expected: NAME yourname")
	}
	return name, nil
}

// ParseWord extracts the raw candidate word from a "WORD <text>" line.
// Validation (length, letters) is the game's job, so a bad word can be
// answered with a specific re-promptable error.
func ParseWord(line string) (string, error) {
	word, err := parsePayload(line, prefixWord)
	if err != nil {
		return "", fmt.Errorf("expected: WORD ABCDE")
	}
	return word, nil
}

// ParseGuess extracts the raw guess from a "GUESS <text>" line.
func ParseGuess(line string) (string, error) {
	guess, err := parsePayload(line, prefixGuess)
	if err != nil {
		return "", fmt.Errorf("expected: GUESS X")
	}
	return guess, nil
}

func parsePayload(line, prefix string) (string, error) {
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("missing %q prefix", prefix)
	}
	payload := strings.TrimSpace(line[len(prefix):])
	if payload == "" {
		return "", fmt.Errorf("empty payload")
	}
	return payload, nil
}

package protocol

import (
	"net"
	"testing"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRole(t *testing.T) {
	assert.Equal(t, "ROLE WORDMASTER", FormatRole(types.SlotWordmaster))
	assert.Equal(t, "ROLE GUESSER 1", FormatRole(types.SlotGuesser1))
	assert.Equal(t, "ROLE GUESSER 2", FormatRole(types.SlotGuesser2))
}

func TestFormatYourTurn(t *testing.T) {
	// internal 0-based pass/pos render 1-based on the wire
	got := FormatYourTurn(0, 2, "C_A__")
	assert.Equal(t, "YOUR_TURN pass=1/5 pos=3 display=C_A__ (send: GUESS X)", got)
}

func TestStateLine(t *testing.T) {
	line := StateLine{
		From:     1,
		Pass:     0,
		Pos:      1,
		Guess:    'A',
		Result:   types.ResultPresent,
		Display:  "C____",
		ScoreA:   1,
		ScoreB:   0,
		NextPass: 0,
		NextPos:  2,
		Turn:     2,
	}.String()
	assert.Equal(t,
		"STATE from=1 pass=1/5 pos=2 guess=A result=PRESENT display=C____ scoreA=1 scoreB=0 next_pass=1/5 next_pos=3 turn=2",
		line)
}

func TestStateLineGameEnded(t *testing.T) {
	line := StateLine{
		From:     2,
		Pass:     4,
		Pos:      4,
		Guess:    'E',
		Result:   types.ResultCorrect,
		Display:  "CRANE",
		ScoreA:   2,
		ScoreB:   3,
		NextPass: 5,
		NextPos:  0,
		Turn:     0,
	}.String()
	assert.Contains(t, line, "turn=0")
	assert.Contains(t, line, "result=CORRECT")
}

func TestGameOverLine(t *testing.T) {
	tests := []struct {
		name   string
		winner int
		want   string
	}{
		{"guesser 1 wins", types.SlotGuesser1, "winner=PLAYER1"},
		{"guesser 2 wins", types.SlotGuesser2, "winner=PLAYER2"},
		{"draw", 0, "winner=DRAW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := GameOverLine{
				Word:    "CRANE",
				Display: "CRANE",
				Passes:  2,
				ScoreA:  3,
				ScoreB:  2,
				Winner:  tt.winner,
			}.String()
			assert.Contains(t, line, tt.want)
			assert.Contains(t, line, "word=CRANE")
			assert.Contains(t, line, "passes=2")
		})
	}
}

func TestParseName(t *testing.T) {
	name, err := ParseName("NAME Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	name, err = ParseName("NAME Alice the Brave")
	require.NoError(t, err)
	assert.Equal(t, "Alice the Brave", name)

	for _, line := range []string{"NAME", "NAME ", "HELLO Alice", ""} {
		_, err := ParseName(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestParseWord(t *testing.T) {
	word, err := ParseWord("WORD crane")
	require.NoError(t, err)
	assert.Equal(t, "crane", word)

	for _, line := range []string{"WORD", "GUESS A", "word CRANE"} {
		_, err := ParseWord(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestParseGuess(t *testing.T) {
	guess, err := ParseGuess("GUESS x")
	require.NoError(t, err)
	assert.Equal(t, "x", guess)

	for _, line := range []string{"GUESS", "WORD CRANE", "guess x"} {
		_, err := ParseGuess(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestConnReadLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	conn := NewConn(server)

	go func() {
		client.Write([]byte("NAME Alice\r\n"))
		client.Write([]byte("GUESS A\n"))
		client.Close()
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "NAME Alice", line, "carriage returns are stripped")

	line, err = conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "GUESS A", line)

	_, err = conn.ReadLine()
	assert.True(t, IsConnectionClosed(err))
}

func TestConnWriteLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := NewConn(server)
	peer := NewConn(client)

	go conn.WriteLine("WELCOME Please identify: NAME yourname")

	line, err := peer.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, Welcome, line)
}

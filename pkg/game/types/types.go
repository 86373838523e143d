package types

const (
	// WordLength is the length of every secret word.
	WordLength = 5
	// MaxPasses is the number of full sweeps over the word before a match ends.
	MaxPasses = 5
	// NumPlayers is the number of player slots in a match.
	NumPlayers = 3

	SlotWordmaster = 0
	SlotGuesser1   = 1
	SlotGuesser2   = 2
)

// Phase represents the lifecycle stage of a match.
type Phase int

const (
	PhaseWaitingPlayers Phase = iota
	PhaseWaitingWord
	PhaseInProgress
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingPlayers:
		return "waiting_players"
	case PhaseWaitingWord:
		return "waiting_word"
	case PhaseInProgress:
		return "in_progress"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// LetterResult classifies a guessed letter against the secret word.
type LetterResult int

const (
	ResultCorrect LetterResult = iota
	ResultPresent
	ResultAbsent
)

func (r LetterResult) String() string {
	switch r {
	case ResultCorrect:
		return "CORRECT"
	case ResultPresent:
		return "PRESENT"
	case ResultAbsent:
		return "ABSENT"
	default:
		return "unknown"
	}
}

// GameState is the single authoritative record for a match. It is owned by
// game.StateManager and must only be touched while holding its mutex.
type GameState struct {
	Phase Phase

	// SecretWord is set while Phase is PhaseWaitingWord and immutable
	// during PhaseInProgress. Empty between matches.
	SecretWord string
	// Display is the revealed mask, '_' for hidden positions.
	Display string

	// CurrentTurn is the slot whose turn it is: 0 while waiting for a
	// word, 1 or 2 while guessing.
	CurrentTurn   int
	PositionIndex int
	PassNumber    int

	Scores      [NumPlayers]int
	Connected   [NumPlayers]bool
	PlayerNames [NumPlayers]string

	// GameNumber counts matches across one server run.
	GameNumber int

	// TurnGated is the scheduler's one-open-per-turn flag: true once a
	// gate has been opened for the current (position, turn) pair.
	TurnGated bool

	ShuttingDown bool
}

// HiddenDisplay is the all-underscores mask a match starts with.
func HiddenDisplay() string {
	b := make([]byte, WordLength)
	for i := range b {
		b[i] = '_'
	}
	return string(b)
}

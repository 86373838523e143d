package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Display renders server lines with color-coded output.
type Display struct {
	serverColor  *color.Color
	promptColor  *color.Color
	okColor      *color.Color
	errColor     *color.Color
	correctColor *color.Color
	presentColor *color.Color
	absentColor  *color.Color
	winColor     *color.Color
	loseColor    *color.Color
	infoColor    *color.Color
}

// NewDisplay creates a new display instance with configured colors.
func NewDisplay() *Display {
	return &Display{
		serverColor:  color.New(color.FgCyan),
		promptColor:  color.New(color.FgYellow, color.Bold),
		okColor:      color.New(color.FgGreen),
		errColor:     color.New(color.FgRed),
		correctColor: color.New(color.FgGreen, color.Bold),
		presentColor: color.New(color.FgYellow),
		absentColor:  color.New(color.FgWhite),
		winColor:     color.New(color.FgGreen, color.Bold),
		loseColor:    color.New(color.FgRed, color.Bold),
		infoColor:    color.New(color.FgWhite),
	}
}

// PrintBanner displays the client banner.
func (d *Display) PrintBanner() {
	banner := `
+----------------------------------+
|        WORDDUEL  CLIENT          |
|   5 letters, 5 passes, 2 rivals  |
+----------------------------------+
`
	d.promptColor.Println(banner)
}

func (d *Display) PrintServer(line string) {
	d.serverColor.Println(line)
}

func (d *Display) PrintInfo(line string) {
	d.infoColor.Println(line)
}

func (d *Display) PrintOK(line string) {
	d.okColor.Println(line)
}

func (d *Display) PrintError(line string) {
	d.errColor.Println(line)
}

func (d *Display) PrintPrompt(line string) {
	d.promptColor.Println(line)
}

// PrintState renders a STATE broadcast as a readable summary.
func (d *Display) PrintState(fields map[string]string) {
	resultColor := d.absentColor
	switch fields["result"] {
	case "CORRECT":
		resultColor = d.correctColor
	case "PRESENT":
		resultColor = d.presentColor
	}

	fmt.Printf("player %s guessed %s at pos %s: ", fields["from"], fields["guess"], fields["pos"])
	resultColor.Print(fields["result"])
	fmt.Printf("   word: %s   scores: %s - %s\n",
		spaced(fields["display"]), fields["scoreA"], fields["scoreB"])
}

// PrintGameOver renders the end-of-match broadcast.
func (d *Display) PrintGameOver(fields map[string]string, myID int) {
	winner := fields["winner"]
	line := fmt.Sprintf("GAME OVER  word=%s  scores: %s - %s  winner: %s",
		fields["word"], fields["scoreA"], fields["scoreB"], winner)
	switch {
	case winner == "DRAW":
		d.promptColor.Println(line)
	case winner == fmt.Sprintf("PLAYER%d", myID):
		d.winColor.Println(line)
	default:
		d.loseColor.Println(line)
	}
}

func spaced(word string) string {
	return strings.Join(strings.Split(word, ""), " ")
}

// parseFields splits a "key=value key=value ..." line into a map,
// skipping the leading verb.
func parseFields(line string) map[string]string {
	fields := make(map[string]string)
	for _, token := range strings.Fields(line) {
		parts := strings.SplitN(token, "=", 2)
		if len(parts) != 2 {
			continue
		}
		fields[parts[0]] = parts[1]
	}
	return fields
}

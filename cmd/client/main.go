package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
)

// inputMode tracks what the server is currently asking for, so bare input
// can be wrapped in the right protocol verb.
type inputMode int

const (
	modeIdle inputMode = iota
	modeWord
	modeGuess
)

type client struct {
	conn    net.Conn
	display *Display
	name    string

	lock sync.Mutex
	mode inputMode
	myID int
}

func main() {
	addr := flag.String("addr", "127.0.0.1", "Server address")
	port := flag.String("port", "5000", "Server port")
	name := flag.String("name", "", "Display name")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: client -addr <host> -port <port> -name <name>")
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", net.JoinHostPort(*addr, *port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to server: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	c := &client{
		conn:    conn,
		display: NewDisplay(),
		name:    *name,
	}
	c.display.PrintBanner()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go c.readServer(cancel)
	go c.readInput(cancel)

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopSignal:
	case <-ctx.Done():
	}
}

// readServer consumes server lines and renders them.
func (c *client) readServer(cancel context.CancelFunc) {
	defer cancel()

	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "WELCOME"):
			c.send("NAME " + c.name)
		case strings.HasPrefix(line, "ROLE"):
			c.display.PrintServer(line)
			c.setRole(line)
		case strings.HasPrefix(line, "INFO"):
			c.display.PrintInfo(strings.TrimPrefix(line, "INFO "))
		case strings.HasPrefix(line, "ENTER_WORD"):
			c.setMode(modeWord)
			c.display.PrintPrompt("Enter your secret word:")
		case strings.HasPrefix(line, "YOUR_TURN"):
			c.setMode(modeGuess)
			fields := parseFields(line)
			c.display.PrintPrompt(fmt.Sprintf("Your turn  pass %s  pos %s  word: %s  guess a letter:",
				fields["pass"], fields["pos"], spaced(fields["display"])))
		case strings.HasPrefix(line, "STATE"):
			c.display.PrintState(parseFields(line))
		case strings.HasPrefix(line, "GAME_OVER"):
			c.display.PrintGameOver(parseFields(line), c.roleID())
		case strings.HasPrefix(line, "OK"):
			c.display.PrintOK(line)
		case strings.HasPrefix(line, "ERR"):
			c.display.PrintError(line)
		default:
			c.display.PrintServer(line)
		}
	}

	c.display.PrintError("Server disconnected.")
}

// readInput consumes stdin lines and forwards them, wrapping bare input in
// the protocol verb the server is waiting for.
func (c *client) readInput(cancel context.CancelFunc) {
	defer cancel()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		upper := strings.ToUpper(input)
		switch {
		case strings.HasPrefix(upper, "NAME ") ||
			strings.HasPrefix(upper, "WORD ") ||
			strings.HasPrefix(upper, "GUESS "):
			c.send(upper)
		default:
			switch c.getMode() {
			case modeWord:
				c.send("WORD " + upper)
			case modeGuess:
				c.send("GUESS " + upper)
			default:
				c.send(upper)
			}
		}
	}
}

func (c *client) send(line string) {
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		c.display.PrintError(fmt.Sprintf("Failed to send to server: %v", err))
	}
}

func (c *client) setMode(m inputMode) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.mode = m
}

func (c *client) getMode() inputMode {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.mode
}

func (c *client) setRole(line string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	fmt.Sscanf(line, "ROLE GUESSER %d", &c.myID)
}

func (c *client) roleID() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.myID
}

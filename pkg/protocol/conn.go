package protocol

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
)

// ErrConnectionClosed is returned when the peer closed the connection.
type ErrConnectionClosed struct{}

func (e *ErrConnectionClosed) Error() string {
	return "connection closed"
}

// IsConnectionClosed reports whether err marks a closed connection.
func IsConnectionClosed(err error) bool {
	_, ok := err.(*ErrConnectionClosed)
	return ok
}

// Conn wraps a byte stream with line-oriented reads and writes. Lines are
// newline-terminated; carriage returns are ignored.
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// ReadLine reads one line, stripping the trailing newline and any carriage
// returns. A closed peer yields *ErrConnectionClosed.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return "", &ErrConnectionClosed{}
		}
		if err != io.EOF {
			return "", fmt.Errorf("failed to read line: %w", err)
		}
	}
	line = strings.TrimRight(line, "\n")
	line = strings.ReplaceAll(line, "\r", "")
	return line, nil
}

// WriteLine writes one line followed by a newline.
func (c *Conn) WriteLine(line string) error {
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the peer address for logging.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

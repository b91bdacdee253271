package tcp

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/fifteen-backend/internal/apperror"
)

// Participant adapts a raw TCP connection to the line-based contract the
// session layer consumes: blocking line reads, line writes, one Close.
type Participant struct {
	id     string
	conn   net.Conn
	reader *bufio.Reader
}

func NewParticipant(conn net.Conn) *Participant {
	return &Participant{
		id:     uuid.NewString(),
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (that *Participant) ID() string {
	return that.id
}

func (that *Participant) SendLine(line string) error {
	if _, err := fmt.Fprintf(that.conn, "%s\n", line); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrParticipantGone, err)
	}

	return nil
}

// ReadLine blocks until a full line arrives. A failed read means the
// participant disconnected.
func (that *Participant) ReadLine() (string, error) {
	line, err := that.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrParticipantGone, err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (that *Participant) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

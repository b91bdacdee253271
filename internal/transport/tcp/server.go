package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/fifteen-backend/internal/service"
)

// greeting is the first line every client sees.
const greeting = "n15 v0.1.0"

type matchmaker interface {
	Offer(ctx context.Context, participant service.Participant)
}

// Server accepts raw TCP connections and hands each one to the matchmaker.
// It knows nothing about the game beyond the greeting line.
type Server struct {
	logger     *slog.Logger
	matchmaker matchmaker
}

func New(logger *slog.Logger, matchmaker matchmaker) *Server {
	return &Server{
		logger:     logger.With("component", "tcp"),
		matchmaker: matchmaker,
	}
}

// Start listens on the given port until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			log.Error("failed to accept connection", "error", err)
			continue
		}

		log.Info("new client", "addr", conn.RemoteAddr().String())

		go that.handleConnection(ctx, conn)
	}
}

func (that *Server) handleConnection(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConnection")

	participant := NewParticipant(conn)

	if err := participant.SendLine(greeting); err != nil {
		log.Info("client left before the greeting", "error", err)
		_ = participant.Close()
		return
	}

	that.matchmaker.Offer(ctx, participant)
}

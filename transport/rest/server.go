package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

type archiveRepo interface {
	GetRecent(ctx context.Context, limit int64) ([]*entity.Game, error)
	GetStats(ctx context.Context) (*entity.Stats, error)
}

type Server struct {
	logger  *slog.Logger
	archive archiveRepo
}

func New(logger *slog.Logger, archive archiveRepo) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		archive: archive,
	}
}

// Start serves the HTTP API until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.pingHandler)
	mux.HandleFunc("/stats", that.statsHandler)
	mux.HandleFunc("/games/recent", that.recentGamesHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

const (
	recentGamesKey = "games:recent"
	statsKey       = "stats"

	// how many finished games the archive keeps
	recentGamesCap = 100
)

type ArchiveRepository interface {
	RecordFinished(ctx context.Context, game *entity.Game) error
	GetRecent(ctx context.Context, limit int64) ([]*entity.Game, error)
	GetStats(ctx context.Context) (*entity.Stats, error)
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

// RecordFinished pushes the finished game onto the capped archive list and
// bumps the aggregate counters in one round trip.
func (that *dbArchive) RecordFinished(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	pipe := that.client.TxPipeline()

	pipe.LPush(ctx, recentGamesKey, gameJSON)
	pipe.LTrim(ctx, recentGamesKey, 0, recentGamesCap-1)
	pipe.HIncrBy(ctx, statsKey, "games_played", 1)

	switch game.Winner {
	case entity.PlayerA:
		pipe.HIncrBy(ctx, statsKey, "wins_first", 1)
	case entity.PlayerB:
		pipe.HIncrBy(ctx, statsKey, "wins_second", 1)
	case entity.PlayerTie:
		pipe.HIncrBy(ctx, statsKey, "draws", 1)
	}

	if game.Forfeit {
		pipe.HIncrBy(ctx, statsKey, "forfeits", 1)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record finished game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetRecent(ctx context.Context, limit int64) ([]*entity.Game, error) {
	if limit <= 0 || limit > recentGamesCap {
		limit = recentGamesCap
	}

	responses, err := that.client.LRange(ctx, recentGamesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}

	games := make([]*entity.Game, 0, len(responses))
	for _, response := range responses {
		var game entity.Game
		if err = json.Unmarshal([]byte(response), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}

		games = append(games, &game)
	}

	return games, nil
}

func (that *dbArchive) GetStats(ctx context.Context) (*entity.Stats, error) {
	fields, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := &entity.Stats{}
	stats.GamesPlayed = parseCounter(fields, "games_played")
	stats.WinsFirst = parseCounter(fields, "wins_first")
	stats.WinsSecond = parseCounter(fields, "wins_second")
	stats.Draws = parseCounter(fields, "draws")
	stats.Forfeits = parseCounter(fields, "forfeits")

	return stats, nil
}

func parseCounter(fields map[string]string, name string) int64 {
	value, err := strconv.ParseInt(fields[name], 10, 64)
	if err != nil {
		return 0
	}

	return value
}

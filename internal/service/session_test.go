package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sessionEnv struct {
	game     *entity.Game
	games    *fakeGameRepo
	players  *fakePlayerRepo
	archive  *fakeArchiveRepo
	first    *fakeParticipant
	second   *fakeParticipant
	sessions *Session
}

func newSessionEnv(t *testing.T, gameType string, first, second *fakeParticipant) *sessionEnv {
	t.Helper()

	game := entity.NewGame(uuid.NewString(), gameType)
	game.Status = entity.StatusOngoing
	game.Players = []*entity.Player{
		{ID: uuid.NewString(), Mark: entity.PlayerA, GameID: game.ID},
		{ID: uuid.NewString(), Mark: entity.PlayerB, GameID: game.ID, Bot: second == nil},
	}

	participants := map[string]Participant{entity.PlayerA: first}
	if second != nil {
		participants[entity.PlayerB] = second
	}

	env := &sessionEnv{
		game:    game,
		games:   newFakeGameRepo(),
		players: newFakePlayerRepo(),
		archive: newFakeArchiveRepo(),
		first:   first,
		second:  second,
	}
	env.sessions = NewSession(discardLogger(), game, participants, env.games, env.players, env.archive)

	return env
}

func TestSession_Run(t *testing.T) {
	t.Run("Plays a full game to a win", func(t *testing.T) {
		// Given: A completing 4+8+3=15 against B's 1 and 2
		first := newFakeParticipant("first", "4", "8", "3")
		second := newFakeParticipant("second", "1", "2")
		env := newSessionEnv(t, entity.PublicType, first, second)

		// When: the session runs to completion
		env.sessions.Run(context.Background())

		// Then: A won, B lost, both connections are closed
		assert.Equal(t, entity.PlayerA, env.game.Winner)
		assert.Contains(t, first.sentLines(), msgYouWin)
		assert.Contains(t, second.sentLines(), msgYouLose)
		assert.True(t, first.isClosed())
		assert.True(t, second.isClosed())

		// And: the opponent saw every move as it was made
		assert.Contains(t, second.sentLines(), "opponent chose 4")
		assert.Contains(t, second.sentLines(), "opponent chose 8")
		assert.Contains(t, first.sentLines(), "opponent chose 1")

		// And: the finished game was archived and the live records dropped
		recorded := env.archive.recordedGames()
		require.Len(t, recorded, 1)
		assert.Equal(t, entity.PlayerA, recorded[0].Winner)
		assert.Contains(t, env.games.deleted, env.game.ID)
		assert.Len(t, env.players.deleted, 2)
	})

	t.Run("Re-prompts on malformed and unavailable picks", func(t *testing.T) {
		// Given: A fumbling twice before each valid move lands
		first := newFakeParticipant("first", "banana", "12", "4", "8", "3")
		second := newFakeParticipant("second", "4", "1", "2")
		env := newSessionEnv(t, entity.PublicType, first, second)

		// When: the session runs
		env.sessions.Run(context.Background())

		// Then: bad input produced re-prompts, never a dropped connection
		firstSent := env.first.sentLines()
		assert.Equal(t, 2, countLines(firstSent, msgBadChoice))
		assert.Equal(t, 1, countLines(env.second.sentLines(), msgUnavailableChoice))

		// And: the game still finished normally with A winning
		assert.Equal(t, entity.PlayerA, env.game.Winner)
		assert.False(t, env.game.Forfeit)
	})

	t.Run("Declares a forfeit when the active side disconnects", func(t *testing.T) {
		// Given: A dropping after its first move
		first := newFakeParticipant("first", "4")
		second := newFakeParticipant("second", "1")
		env := newSessionEnv(t, entity.PublicType, first, second)

		// When: the session runs
		env.sessions.Run(context.Background())

		// Then: B wins by forfeit and both connections are closed
		assert.Equal(t, entity.PlayerB, env.game.Winner)
		assert.True(t, env.game.Forfeit)
		assert.Contains(t, second.sentLines(), msgForfeit)
		assert.Contains(t, second.sentLines(), msgYouWin)
		assert.True(t, first.isClosed())
		assert.True(t, second.isClosed())

		// And: the forfeit was archived
		recorded := env.archive.recordedGames()
		require.Len(t, recorded, 1)
		assert.True(t, recorded[0].Forfeit)
	})

	t.Run("Ends in a draw when the pool is exhausted", func(t *testing.T) {
		// Given: nine picks with no winning triple in either hand
		first := newFakeParticipant("first", "2", "6", "5", "1", "3")
		second := newFakeParticipant("second", "7", "9", "4", "8")
		env := newSessionEnv(t, entity.PublicType, first, second)

		// When: the session runs
		env.sessions.Run(context.Background())

		// Then: both sides see the draw
		assert.Equal(t, entity.PlayerTie, env.game.Winner)
		assert.Contains(t, first.sentLines(), msgDraw)
		assert.Contains(t, second.sentLines(), msgDraw)
	})

	t.Run("Plays the machine player in a bot game", func(t *testing.T) {
		// Given: a human completing 4+8+3=15 against the heuristic bot
		first := newFakeParticipant("first", "4", "8", "3")
		env := newSessionEnv(t, entity.WithBotType, first, nil)

		// When: the session runs
		env.sessions.Run(context.Background())

		// Then: the human won and saw both bot moves, starting with the center
		assert.Equal(t, entity.PlayerA, env.game.Winner)
		assert.Contains(t, first.sentLines(), msgYouWin)
		assert.Contains(t, first.sentLines(), "opponent chose 5")
		assert.Equal(t, 2, countPrefixed(first.sentLines(), "opponent chose "))
	})
}

func countLines(lines []string, needle string) int {
	count := 0
	for _, line := range lines {
		if line == needle {
			count++
		}
	}

	return count
}

func countPrefixed(lines []string, prefix string) int {
	count := 0
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}

	return count
}

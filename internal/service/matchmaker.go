package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

const msgWaiting = "waiting for an opponent"

// Matchmaker pairs offered participants two at a time and hands each pair
// to a fresh session. It is the only structure shared between connection
// goroutines, so the queue sits behind a mutex.
type Matchmaker struct {
	logger *slog.Logger

	gameRepo    gameRepo
	playerRepo  playerRepo
	archiveRepo archiveRepo

	withBot bool

	mu    sync.Mutex
	queue []Participant
}

func NewMatchmaker(
	logger *slog.Logger,
	gameRepo gameRepo,
	playerRepo playerRepo,
	archiveRepo archiveRepo,
	withBot bool,
) *Matchmaker {
	return &Matchmaker{
		logger:      logger,
		gameRepo:    gameRepo,
		playerRepo:  playerRepo,
		archiveRepo: archiveRepo,
		withBot:     withBot,
	}
}

// Offer enqueues a newly accepted participant. The second arrival completes
// a pair and starts the match on its own goroutine; Offer itself never
// blocks for the duration of a game.
func (that *Matchmaker) Offer(ctx context.Context, participant Participant) {
	log := that.logger.With("component", "matchmaker", "method", "Offer")

	if that.withBot {
		that.startBotGame(ctx, participant)
		return
	}

	that.mu.Lock()
	that.queue = append(that.queue, participant)

	if len(that.queue) < 2 {
		that.mu.Unlock()

		if err := participant.SendLine(msgWaiting); err != nil {
			log.Info("participant left the queue", "id", participant.ID(), "error", err)
			that.evict(participant)
		}

		return
	}

	first, second := that.queue[0], that.queue[1]
	that.queue = that.queue[2:]
	that.mu.Unlock()

	that.startGame(ctx, first, second)
}

// Waiting reports how many participants are queued without a match.
func (that *Matchmaker) Waiting() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.queue)
}

// evict removes a dead participant that is still waiting for a pair.
// If a concurrent Offer already paired it, the session owns the connection
// and eviction backs off.
func (that *Matchmaker) evict(participant Participant) {
	that.mu.Lock()
	found := false
	for i, queued := range that.queue {
		if queued == participant {
			that.queue = append(that.queue[:i], that.queue[i+1:]...)
			found = true
			break
		}
	}
	that.mu.Unlock()

	if found {
		_ = participant.Close()
	}
}

func (that *Matchmaker) startGame(ctx context.Context, first, second Participant) {
	log := that.logger.With("component", "matchmaker", "method", "startGame")

	game := that.newGame(ctx, entity.PublicType)
	game.Players = []*entity.Player{
		that.newPlayer(ctx, game.ID, entity.PlayerA, false),
		that.newPlayer(ctx, game.ID, entity.PlayerB, false),
	}

	participants := map[string]Participant{
		entity.PlayerA: first,
		entity.PlayerB: second,
	}

	log.Info("pair matched", "game", game.ID, "first", first.ID(), "second", second.ID())

	session := NewSession(that.logger, game, participants, that.gameRepo, that.playerRepo, that.archiveRepo)
	go session.Run(ctx)
}

func (that *Matchmaker) startBotGame(ctx context.Context, participant Participant) {
	log := that.logger.With("component", "matchmaker", "method", "startBotGame")

	game := that.newGame(ctx, entity.WithBotType)
	game.Players = []*entity.Player{
		that.newPlayer(ctx, game.ID, entity.PlayerA, false),
		that.newPlayer(ctx, game.ID, entity.PlayerB, true),
	}

	participants := map[string]Participant{
		entity.PlayerA: participant,
	}

	log.Info("bot game started", "game", game.ID, "player", participant.ID())

	session := NewSession(that.logger, game, participants, that.gameRepo, that.playerRepo, that.archiveRepo)
	go session.Run(ctx)
}

func (that *Matchmaker) newGame(ctx context.Context, gameType string) *entity.Game {
	log := that.logger.With("component", "matchmaker", "method", "newGame")

	game := entity.NewGame(uuid.NewString(), gameType)
	game.Status = entity.StatusOngoing

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to save game", "error", err)
	}

	return game
}

func (that *Matchmaker) newPlayer(ctx context.Context, gameID, mark string, bot bool) *entity.Player {
	log := that.logger.With("component", "matchmaker", "method", "newPlayer")

	player := &entity.Player{
		ID:     uuid.NewString(),
		Mark:   mark,
		GameID: gameID,
		Bot:    bot,
	}

	if !bot {
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to save player", "error", err)
		}
	}

	return player
}

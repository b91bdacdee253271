package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fifteen-backend/internal/apperror"
	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
	"github.com/rocketscienceinc/fifteen-backend/internal/fifteen"
)

const (
	msgYourTurn          = "your turn, pick a number:"
	msgOpponentTurn      = "opponent's turn, waiting"
	msgBadChoice         = "bad choice try again"
	msgUnavailableChoice = "unavailable choice try again"
	msgYouWin            = "you win"
	msgYouLose           = "you lose"
	msgDraw              = "draw"
	msgForfeit           = "opponent left, you win by forfeit"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	RecordFinished(ctx context.Context, game *entity.Game) error
}

// Session drives one match from pairing to completion. It is the only
// goroutine touching its game state, so the game itself needs no locking.
type Session struct {
	logger *slog.Logger

	game         *entity.Game
	participants map[string]Participant

	gameRepo    gameRepo
	playerRepo  playerRepo
	archiveRepo archiveRepo
}

func NewSession(
	logger *slog.Logger,
	game *entity.Game,
	participants map[string]Participant,
	gameRepo gameRepo,
	playerRepo playerRepo,
	archiveRepo archiveRepo,
) *Session {
	return &Session{
		logger:       logger.With("component", "session", "game", game.ID),
		game:         game,
		participants: participants,
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		archiveRepo:  archiveRepo,
	}
}

// Run plays the game to completion and blocks until it is over. It never
// returns an error: every failure is resolved inside the session so one bad
// match cannot take down the rest of the server.
func (that *Session) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	defer that.closeParticipants()

	if offender := that.greet(); offender != "" {
		that.declareForfeit(offender)
	}

	for that.game.IsOngoing() {
		mark := that.game.Turn

		if that.playerByMark(mark).IsBot() {
			if offender := that.botTurn(); offender != "" {
				that.declareForfeit(offender)
			}
			continue
		}

		if offender := that.humanTurn(ctx, mark); offender != "" {
			that.declareForfeit(offender)
		}
	}

	that.announceResult()
	that.cleanup(ctx)

	log.Info("game over", "winner", that.game.Winner, "forfeit", that.game.Forfeit)
}

// greet tells each human which side it plays. Returns the mark of a
// participant whose connection already failed, or "".
func (that *Session) greet() string {
	for mark, participant := range that.participants {
		notice := "opponent found, you move second"
		if mark == that.game.Turn {
			notice = "opponent found, you move first"
		}
		if that.game.IsWithBot() {
			notice = "playing against the house, you move first"
		}

		if err := participant.SendLine(notice); err != nil {
			return mark
		}
	}

	return ""
}

// humanTurn runs one full turn for mark: prompt, read, validate, apply.
// Invalid input re-prompts the same participant without advancing the turn.
// Returns the mark of a disconnected participant, or "".
func (that *Session) humanTurn(ctx context.Context, mark string) string {
	log := that.logger.With("method", "humanTurn", "mark", mark)

	opponent := entity.OpponentMark(mark)
	active := that.participants[mark]

	if waiting, ok := that.participants[opponent]; ok {
		if err := waiting.SendLine(msgOpponentTurn); err != nil {
			return opponent
		}
	}

	for {
		if err := that.sendBoard(active, mark); err != nil {
			return mark
		}

		line, err := active.ReadLine()
		if err != nil {
			log.Info("participant disconnected", "error", err)
			return mark
		}

		pick, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			if err = active.SendLine(msgBadChoice); err != nil {
				return mark
			}
			continue
		}

		err = fifteen.MakeTurn(that.game, mark, pick)

		switch {
		case errors.Is(err, apperror.ErrNumberTaken):
			if err = active.SendLine(msgUnavailableChoice); err != nil {
				return mark
			}
			continue
		case errors.Is(err, apperror.ErrInvalidMove):
			if err = active.SendLine(msgBadChoice); err != nil {
				return mark
			}
			continue
		case err != nil:
			// unreachable while the session is the game's only writer
			log.Error("failed to make turn", "error", err)
			return mark
		}

		that.saveGame(ctx)

		if waiting, ok := that.participants[opponent]; ok {
			if err = waiting.SendLine(fmt.Sprintf("opponent chose %d", pick)); err != nil {
				return opponent
			}
		}

		return ""
	}
}

// botTurn makes one heuristic move for the machine player.
func (that *Session) botTurn() string {
	log := that.logger.With("method", "botTurn")

	mark := that.game.Turn
	opponent := entity.OpponentMark(mark)

	pick, err := fifteen.HeuristicChoice(that.game.Pool)
	if err != nil {
		// unreachable: an ongoing game always has numbers left
		log.Error("bot has no move", "error", err)
		that.game.Winner = entity.PlayerTie
		that.game.Status = entity.StatusFinished
		return ""
	}

	if err = fifteen.MakeTurn(that.game, mark, pick); err != nil {
		log.Error("bot failed to make turn", "error", err)
		return ""
	}

	if human, ok := that.participants[opponent]; ok {
		if err = human.SendLine(fmt.Sprintf("opponent chose %d", pick)); err != nil {
			return opponent
		}
	}

	return ""
}

// sendBoard shows the active participant both hands and the remaining pool,
// then prompts for a move.
func (that *Session) sendBoard(participant Participant, mark string) error {
	opponent := entity.OpponentMark(mark)

	lines := []string{
		"opponent: " + that.game.HandOf(opponent).String(),
		"you: " + that.game.HandOf(mark).String(),
		"available: " + that.game.Pool.String(),
		msgYourTurn,
	}

	for _, line := range lines {
		if err := participant.SendLine(line); err != nil {
			return fmt.Errorf("failed to send board: %w", err)
		}
	}

	return nil
}

// declareForfeit ends the game in favor of the offender's opponent.
func (that *Session) declareForfeit(offender string) {
	if that.game.IsFinished() {
		return
	}

	that.game.Winner = entity.OpponentMark(offender)
	that.game.Status = entity.StatusFinished
	that.game.Turn = ""
	that.game.Forfeit = true

	if participant, ok := that.participants[offender]; ok {
		_ = participant.Close()
		delete(that.participants, offender)
	}
}

// announceResult sends the terminal line to everyone still connected.
// Send failures no longer matter here.
func (that *Session) announceResult() {
	for mark, participant := range that.participants {
		switch {
		case that.game.IsTie():
			_ = participant.SendLine(msgDraw)
		case that.game.Winner == mark && that.game.Forfeit:
			_ = participant.SendLine(msgForfeit)
			_ = participant.SendLine(msgYouWin)
		case that.game.Winner == mark:
			_ = participant.SendLine(msgYouWin)
		default:
			_ = participant.SendLine(msgYouLose)
		}
	}
}

func (that *Session) saveGame(ctx context.Context) {
	log := that.logger.With("method", "saveGame")

	if err := that.gameRepo.CreateOrUpdate(ctx, that.game); err != nil {
		log.Error("failed to save game", "error", err)
	}
}

// cleanup archives the finished game and drops the live records.
func (that *Session) cleanup(ctx context.Context) {
	log := that.logger.With("method", "cleanup")

	if err := that.archiveRepo.RecordFinished(ctx, that.game); err != nil {
		log.Error("failed to archive game", "error", err)
	}

	if err := that.gameRepo.DeleteByID(ctx, that.game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range that.game.Players {
		if player.IsBot() {
			continue
		}

		if err := that.playerRepo.DeleteByID(ctx, player.ID); err != nil {
			log.Error("failed to delete player", "error", err)
		}
	}
}

func (that *Session) closeParticipants() {
	for _, participant := range that.participants {
		_ = participant.Close()
	}
}

func (that *Session) playerByMark(mark string) *entity.Player {
	for _, player := range that.game.Players {
		if player.Mark == mark {
			return player
		}
	}

	// unreachable: a game is always created with both players
	return &entity.Player{Mark: mark}
}

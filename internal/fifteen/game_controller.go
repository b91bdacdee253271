package fifteen

import (
	"fmt"

	"github.com/rocketscienceinc/fifteen-backend/internal/apperror"
	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

// MakeTurn applies one pick for the given mark. Validation happens before
// any state changes, so a rejected move leaves the pool and hands exactly
// as they were.
func MakeTurn(gameInstance *entity.Game, mark string, pick int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.Pool.Pick(pick); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Hands[mark] = append(gameInstance.Hands[mark], pick)
	updateGameStatus(gameInstance, mark)

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, mark string) {
	if _, won := gameInstance.Hands[mark].WinningSet(); won {
		gameInstance.Winner = mark
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
		return
	}

	if gameInstance.Pool.IsExhausted() {
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
		return
	}

	gameInstance.Turn = entity.OpponentMark(mark)
}

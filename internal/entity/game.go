package entity

import (
	"fmt"

	"github.com/rocketscienceinc/fifteen-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerA   = "A"
	PlayerB   = "B"
	PlayerTie = "-"
)

const (
	PublicType  = "public"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = fmt.Errorf("unknown game status")

type Game struct {
	ID     string          `json:"id"`
	Pool   Pool            `json:"pool"`
	Hands  map[string]Hand `json:"hands"`
	Winner string          `json:"winner,omitempty"`
	Status string          `json:"status"`
	Turn   string          `json:"player_turn,omitempty"`

	// Forfeit marks a win awarded because the opponent disconnected.
	Forfeit bool `json:"forfeit,omitempty"`

	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:   id,
		Pool: NewPool(),
		Hands: map[string]Hand{
			PlayerA: {},
			PlayerB: {},
		},
		Turn:   PlayerA,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// HandOf returns the hand belonging to the given mark.
func (that *Game) HandOf(mark string) Hand {
	return that.Hands[mark]
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) IsTie() bool {
	return that.Winner == PlayerTie
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func OpponentMark(mark string) string {
	if mark == PlayerA {
		return PlayerB
	}

	return PlayerA
}

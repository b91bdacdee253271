package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidMove      = errors.New("invalid move")
	ErrNumberTaken      = errors.New("number is already taken")
	ErrParticipantGone  = errors.New("participant disconnected")
)

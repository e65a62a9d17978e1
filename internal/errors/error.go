package errors

import "errors"

var (
	ErrNoMove        = errors.New("no legal move available")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrIllegalMove   = errors.New("illegal move")
	ErrBadCoordinate = errors.New("bad coordinate")
	ErrWrongTurn     = errors.New("turn ownership violated")
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFinished  = errors.New("game already finished")
	ErrInternal      = errors.New("internal error")
	ErrBadRequest    = errors.New("bad request")
)

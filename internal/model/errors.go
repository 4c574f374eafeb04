package model

import "errors"

// Common errors used across the application
var (
	// Engine errors
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrOutOfFlags           = errors.New("no flags left")
	ErrFlagPoolFull         = errors.New("flag pool already holds every flag")
	ErrInvalidLayout        = errors.New("invalid mine layout")

	// Session errors
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrGameOver        = errors.New("game is already over")
	ErrForbidden       = errors.New("token does not own this game")
	ErrUnknownMove     = errors.New("unknown move kind")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrNoMove          = errors.New("no move available")
)

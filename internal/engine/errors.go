package engine

import "errors"

var (
	// ErrMissingResource means the loader had no event or location for an id.
	ErrMissingResource = errors.New("missing resource")

	// ErrUnknownLocation means the location is not available to the player.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrGameOver means the run has ended and no new actions are accepted.
	ErrGameOver = errors.New("game over")
)

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks an operation rejected before any state changed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPlayerNotInGame is returned when dealing to or removing a player that
	// is not a member of the game.
	ErrPlayerNotInGame = fmt.Errorf("player is not in this game: %w", ErrInvalidArgument)
)

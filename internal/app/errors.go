package app

import (
	"errors"

	"monstercoup/internal/domain"
)

// Validation failures: the request is rejected, game state is unchanged,
// and only the caller is told.
var (
	ErrGameFull            = errors.New("game already has two players")
	ErrDuplicatePlayer     = errors.New("player already joined this game")
	ErrNotReady            = errors.New("game cannot start yet")
	ErrGameNotInProgress   = errors.New("game is not awaiting a declared action")
	ErrNotAwaitingResponse = errors.New("no declared action to respond to")
	ErrNotAwaitingChoice   = errors.New("no forced card loss to resolve")
	ErrWrongTurn           = errors.New("not this player's turn")
	ErrUnknownPlayer       = errors.New("player is not in this game")
	ErrUnknownAction       = errors.New("unknown action")
	ErrInvalidTarget       = errors.New("invalid or eliminated target")
	ErrInsufficientCoins   = errors.New("not enough coins")
	ErrInvalidResponder    = errors.New("acting player cannot respond to own action")
	ErrNotYourChoice       = errors.New("forced loss belongs to another player")
)

// IsValidation reports whether err is a recoverable rejection of a request
// that left the game untouched.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrGameFull, ErrDuplicatePlayer, ErrNotReady, ErrGameNotInProgress,
		ErrNotAwaitingResponse, ErrNotAwaitingChoice, ErrWrongTurn,
		ErrUnknownPlayer, ErrUnknownAction, ErrInvalidTarget,
		ErrInsufficientCoins, ErrInvalidResponder, ErrNotYourChoice,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsResource reports whether err is a recoverable resource failure, such as
// naming a card the player does not hold.
func IsResource(err error) bool {
	return errors.Is(err, domain.ErrCardNotFound)
}

package game

import "fmt"

// Code is a machine-readable rejection reason.
type Code string

const (
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"

	// Turn and phase errors
	CodeGameOver      Code = "GAME_OVER"
	CodeNotYourTurn   Code = "NOT_YOUR_TURN"
	CodeWrongPhase    Code = "WRONG_PHASE"
	CodeInvalidPlayer Code = "INVALID_PLAYER"

	// Pending choice errors
	CodeChoicePending    Code = "CHOICE_PENDING"
	CodeNoChoicePending  Code = "NO_CHOICE_PENDING"
	CodeInvalidSelection Code = "INVALID_SELECTION"

	// Card and zone errors
	CodeUnknownCard        Code = "UNKNOWN_CARD"
	CodeNotInHand          Code = "NOT_IN_HAND"
	CodeNotScrappable      Code = "NOT_SCRAPPABLE"
	CodeNotFrontierCard    Code = "NOT_FRONTIER_CARD"
	CodeInvalidDrawOrder   Code = "INVALID_DRAW_ORDER"
	CodeBaseNotDeployed    Code = "BASE_NOT_DEPLOYED"
	CodeAlreadyActivated   Code = "ALREADY_ACTIVATED"
	CodeArtNotRequested    Code = "ART_NOT_REQUESTED"
	CodeInvalidTarget      Code = "INVALID_TARGET"
	CodeOutpostBlocks      Code = "OUTPOST_BLOCKS"
	CodeEmptySlot          Code = "EMPTY_SLOT"
	CodeInsufficientTrade  Code = "INSUFFICIENT_TRADE"
	CodeInsufficientCombat Code = "INSUFFICIENT_COMBAT"
)

// Rejection is the typed failure returned for an invalid command. The
// game state is unchanged whenever a command is rejected.
type Rejection struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

func reject(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

package engine

import (
	"errors"
	"fmt"
	"strconv"
)

// Code is a machine-readable rule violation code.
type Code string

const (
	CodeNotYourTurn                Code = "NOT_YOUR_TURN"
	CodeSanctioned                 Code = "SANCTIONED"
	CodeAlreadySanctioned          Code = "ALREADY_SANCTIONED"
	CodeNotEnoughCoins             Code = "NOT_ENOUGH_COINS"
	CodeMaxPlayersExceeded         Code = "MAX_PLAYERS_EXCEEDED"
	CodeDuplicateArrest            Code = "DUPLICATE_ARREST"
	CodeMustPerformCoup            Code = "MUST_PERFORM_COUP"
	CodeTargetNoCoins              Code = "TARGET_NO_COINS"
	CodeDuplicatePlayerName        Code = "DUPLICATE_PLAYER_NAME"
	CodeGameStillOngoing           Code = "GAME_STILL_ONGOING"
	CodeGameNotStarted             Code = "GAME_NOT_STARTED"
	CodeNoPlayersLeft              Code = "NO_PLAYERS_LEFT"
	CodePlayerNotFound             Code = "PLAYER_NOT_FOUND"
	CodeTargetIsAlreadyEliminated  Code = "TARGET_IS_ALREADY_ELIMINATED"
	CodeTargetIsEliminated         Code = "TARGET_IS_ELIMINATED"
	CodeTargetNotEliminated        Code = "TARGET_NOT_ELIMINATED"
	CodeActionAlreadyUsedThisRound Code = "ACTION_ALREADY_USED_THIS_ROUND"
	CodePlayerEliminated           Code = "PLAYER_ELIMINATED"
	CodeActionTooOld               Code = "ACTION_TOO_OLD"
	CodeCannotUndoOwnAction        Code = "CANNOT_UNDO_OWN_ACTION"
	CodeNoRecentActionToUndo       Code = "NO_RECENT_ACTION_TO_UNDO"
	CodeNoCoupToUndo               Code = "NO_COUP_TO_UNDO"
	CodeUndoNotAllowed             Code = "UNDO_NOT_ALLOWED"
	CodeInvalidBribeUndo           Code = "INVALID_BRIBE_UNDO"
	CodeCannotTargetYourself       Code = "CANNOT_TARGET_YOURSELF"
	CodeArrestBlocked              Code = "ARREST_BLOCKED"
	CodeInvalidAction              Code = "INVALID_ACTION"
)

// Error is a rule violation. Two errors match under errors.Is when their
// codes are equal, so the parameterized constructors below still match the
// corresponding Err* sentinel.
type Error struct {
	Code     Code              `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func withMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

var (
	ErrNotYourTurn                = newError(CodeNotYourTurn, "not your turn")
	ErrSanctioned                 = newError(CodeSanctioned, "you are sanctioned and cannot perform this action")
	ErrAlreadySanctioned          = newError(CodeAlreadySanctioned, "target is already sanctioned")
	ErrNotEnoughCoins             = newError(CodeNotEnoughCoins, "not enough coins")
	ErrMaxPlayersExceeded         = newError(CodeMaxPlayersExceeded, fmt.Sprintf("cannot add more than %d players", MaxPlayers))
	ErrDuplicateArrest            = newError(CodeDuplicateArrest, "cannot arrest the same player twice in a row")
	ErrMustPerformCoup            = newError(CodeMustPerformCoup, fmt.Sprintf("you must perform a coup when you have %d or more coins", ForcedCoupCoins))
	ErrTargetNoCoins              = newError(CodeTargetNoCoins, "target has no coins to arrest")
	ErrDuplicatePlayerName        = newError(CodeDuplicatePlayerName, "player name already exists")
	ErrGameStillOngoing           = newError(CodeGameStillOngoing, "game is still ongoing, more than one player remains")
	ErrGameNotStarted             = newError(CodeGameNotStarted, "not enough players to start the game")
	ErrNoPlayersLeft              = newError(CodeNoPlayersLeft, "no players left")
	ErrPlayerNotFound             = newError(CodePlayerNotFound, "player not found")
	ErrTargetIsAlreadyEliminated  = newError(CodeTargetIsAlreadyEliminated, "target is already eliminated")
	ErrTargetIsEliminated         = newError(CodeTargetIsEliminated, "cannot target an eliminated player")
	ErrTargetNotEliminated        = newError(CodeTargetNotEliminated, "target is not eliminated")
	ErrActionAlreadyUsedThisRound = newError(CodeActionAlreadyUsedThisRound, "action already used this round")
	ErrPlayerEliminated           = newError(CodePlayerEliminated, "player is eliminated")
	ErrActionTooOld               = newError(CodeActionTooOld, "action is too old")
	ErrCannotUndoOwnAction        = newError(CodeCannotUndoOwnAction, "cannot undo own action")
	ErrNoRecentActionToUndo       = newError(CodeNoRecentActionToUndo, "no recent action to undo")
	ErrNoCoupToUndo               = newError(CodeNoCoupToUndo, "no coup to undo")
	ErrUndoNotAllowed             = newError(CodeUndoNotAllowed, "undo not allowed")
	ErrInvalidBribeUndo           = newError(CodeInvalidBribeUndo, "target has not done a bribe or has already undone it")
	ErrCannotTargetYourself       = newError(CodeCannotTargetYourself, "you cannot target yourself")
	ErrArrestBlocked              = newError(CodeArrestBlocked, "you are blocked from using arrest this turn")
	ErrInvalidAction              = newError(CodeInvalidAction, "invalid action")
)

// NotEnoughCoins reports a payment the player cannot afford.
func NotEnoughCoins(required, current int) *Error {
	return withMetadata(CodeNotEnoughCoins,
		fmt.Sprintf("not enough coins: required %d, but have %d", required, current),
		map[string]string{"required": strconv.Itoa(required), "current": strconv.Itoa(current)})
}

func PlayerNotFound(name string) *Error {
	return withMetadata(CodePlayerNotFound, "player not found: "+name,
		map[string]string{"name": name})
}

func ActionAlreadyUsedThisRound(name, action string) *Error {
	return withMetadata(CodeActionAlreadyUsedThisRound,
		fmt.Sprintf("%s has already used %s this round", name, action),
		map[string]string{"name": name, "action": action})
}

func PlayerEliminated(name string) *Error {
	return withMetadata(CodePlayerEliminated, name+" is eliminated",
		map[string]string{"name": name})
}

func ActionTooOld(actor, action string) *Error {
	return withMetadata(CodeActionTooOld, fmt.Sprintf("%s's %s is too old", actor, action),
		map[string]string{"actor": actor, "action": action})
}

func CannotUndoOwnAction(name, action string) *Error {
	return withMetadata(CodeCannotUndoOwnAction,
		fmt.Sprintf("%s cannot undo their own %s", name, action),
		map[string]string{"name": name, "action": action})
}

func NoRecentActionToUndo(action string) *Error {
	return withMetadata(CodeNoRecentActionToUndo,
		fmt.Sprintf("no recent %s by another player to undo", action),
		map[string]string{"action": action})
}

func NoCoupToUndo(target string) *Error {
	return withMetadata(CodeNoCoupToUndo, "no coup was found to undo for "+target,
		map[string]string{"target": target})
}

func UndoNotAllowed(target, action string) *Error {
	return withMetadata(CodeUndoNotAllowed, fmt.Sprintf("%s has not used %s", target, action),
		map[string]string{"target": target, "action": action})
}

// CodeOf returns the rule violation code carried by err, or "" when err is
// not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

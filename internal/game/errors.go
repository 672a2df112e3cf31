package game

import (
	"errors"
	"fmt"
)

// Sentinel reasons for rejected operations. All of them are recoverable:
// the operation is refused with no state change and may be retried with
// corrected input.
var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrCardOnField   = errors.New("card already on a row")
	ErrInvalidRow    = errors.New("invalid row")
	ErrGameEnded     = errors.New("game already ended")
	ErrAlreadyPassed = errors.New("already passed this round")
	ErrUnknownPlayer = errors.New("player not in this session")
	ErrNoLeader      = errors.New("no leader configured")
	ErrLeaderUsed    = errors.New("leader ability already used")
)

// IllegalOperationError rejects a session operation without mutating state.
type IllegalOperationError struct {
	Op     string
	Player string
	Reason error
}

func (e *IllegalOperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Reason)
}

func (e *IllegalOperationError) Unwrap() error { return e.Reason }

// IsIllegalOperation reports whether err is a rejected session operation.
func IsIllegalOperation(err error) bool {
	var ie *IllegalOperationError
	return errors.As(err, &ie)
}

func illegalOp(op, player string, reason error) error {
	return &IllegalOperationError{Op: op, Player: player, Reason: reason}
}

// ConfigurationError aborts session creation before any state mutation,
// e.g. a deck referencing a card id the catalog does not know.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("session config %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is a session setup failure.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Err: fmt.Errorf(format, args...)}
}

// InvariantError signals a broken internal invariant (e.g. a card found in
// two locations at once). It is a programming error: the session is failed,
// not silently recovered.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Detail
}

package campaign

import "errors"

var (
	ErrInvalidPhase             = errors.New("action not allowed in current session phase")
	ErrSubstitutionNotConfirmed = errors.New("substitution requires explicit confirmation")
	ErrUnknownRoom              = errors.New("room is not part of the current assignment")
	ErrUnknownItem              = errors.New("unknown checklist item")
	ErrNoCandidates             = errors.New("no rooms with checked items to save")
	ErrInvalidDate              = errors.New("invalid session date")
)

package services

import "errors"

var (
	// ErrNoDraft is returned by operations that need a draft in progress
	ErrNoDraft = errors.New("no draft in progress, import a roster first")

	// ErrDraftInProgress guards against replacing a draft by accident
	ErrDraftInProgress = errors.New("a draft is already in progress")

	// ErrDraftComplete is returned when a pick is made after every suite is finalized
	ErrDraftComplete = errors.New("every suite is finalized")

	ErrEmptyRoster     = errors.New("roster has no dancers")
	ErrNoPicks         = errors.New("no dancers picked")
	ErrTooManyPicks    = errors.New("too many picks for one turn")
	ErrUnknownDancer   = errors.New("unknown dancer")
	ErrAmbiguousDancer = errors.New("ambiguous dancer reference")
	ErrAlreadyAssigned = errors.New("dancer already assigned")
	ErrUnknownSuite    = errors.New("unknown suite")
)

package session

import "errors"

// Named error kinds surfaced to callers. Each maps to a stable failure mode
// so an outer layer can choose a status without inspecting internals; none
// of them is retried here.
var (
	// ErrCollectionNotFound means the collection does not exist or is not
	// owned by the requesting learner.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrEmptyCollection means the collection has no items, so a session
	// cannot be created from it.
	ErrEmptyCollection = errors.New("collection has no items")
	// ErrSessionNotFound means the session does not exist or is not owned
	// by the requesting learner.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCardNotFound means the card does not belong to the session.
	ErrCardNotFound = errors.New("session card not found")
	// ErrAlreadyAnswered means the card has already been answered; a card
	// takes exactly one answer.
	ErrAlreadyAnswered = errors.New("session card already answered")
	// ErrInvalidMaxCards means the requested card cap is not positive.
	ErrInvalidMaxCards = errors.New("max cards must be at least 1")
)

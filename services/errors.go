package services

import (
	"errors"
	"fmt"

	"termbingo/bingo"
)

// ErrNotFound covers unknown sessions and players.
var ErrNotFound = errors.New("not found")

// ErrNoActiveRound is defensive only: session creation seeds round #1, so a
// session normally always has an active round.
var ErrNoActiveRound = errors.New("session has no active round")

// ErrInsufficientPool mirrors the card generator's error at the service
// boundary so handlers can match on a single taxonomy.
var ErrInsufficientPool = bingo.ErrInsufficientPool

// ValidationError rejects malformed or out-of-range input before any state
// change happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed durable write. The operation fails as a
// whole: the cache is never updated when the storage write failed, so cache
// and storage cannot silently diverge.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: storage write failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

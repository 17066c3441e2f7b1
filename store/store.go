package store

import (
	"context"
	"errors"

	"termbingo/models"
)

// ErrNotFound is returned for lookups that match no record.
var ErrNotFound = errors.New("record not found")

// Store is the durable side of the two-tier state arrangement: Redis is the
// fast path, the Store is the source of truth across restarts. Every mutation
// goes to the Store first; the cache is only updated after the durable write
// succeeds.
type Store interface {
	CreateSession(ctx context.Context, session *models.Session) error
	SessionByCode(ctx context.Context, code string) (*models.Session, error)
	UpdateSessionStatus(ctx context.Context, sessionID uint, status string) error

	CreatePlayer(ctx context.Context, player *models.Player) error
	PlayerByPublicID(ctx context.Context, publicID string) (*models.Player, error)
	PlayersBySession(ctx context.Context, sessionID uint) ([]models.Player, error)

	CreateDraw(ctx context.Context, draw *models.Draw) error
	DrawsBySession(ctx context.Context, sessionID uint) ([]models.Draw, error)
	DeleteLastDraw(ctx context.Context, sessionID uint) error

	// StartRound ends the active round (if any) and inserts round max+1 with
	// the given rule, atomically.
	StartRound(ctx context.Context, sessionID uint, rule string) (*models.Round, error)
	// SetActiveRoundRule changes the active round's rule in place. ErrNotFound
	// when the session has no active round.
	SetActiveRoundRule(ctx context.Context, sessionID uint, rule string) (*models.Round, error)
	ActiveRound(ctx context.Context, sessionID uint) (*models.Round, error)

	CreateClaim(ctx context.Context, claim *models.Claim) error
	// ClaimsBySession returns claims ordered by declaration time ascending,
	// insertion id as tie-break. A non-nil round filters to that round number.
	ClaimsBySession(ctx context.Context, sessionID uint, round *int) ([]models.Claim, error)
}

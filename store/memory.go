package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"termbingo/models"
)

// MemoryStore is an in-memory Store implementation used in tests and when no
// database is configured.
type MemoryStore struct {
	mu sync.RWMutex

	nextID uint

	sessions map[uint]*models.Session
	byCode   map[string]uint
	players  map[uint][]*models.Player // sessionID -> players, join order
	draws    map[uint][]*models.Draw   // sessionID -> draws, index order
	rounds   map[uint][]*models.Round  // sessionID -> rounds, number order
	claims   map[uint][]*models.Claim  // sessionID -> claims, insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uint]*models.Session),
		byCode:   make(map[string]uint),
		players:  make(map[uint][]*models.Player),
		draws:    make(map[uint][]*models.Draw),
		rounds:   make(map[uint][]*models.Round),
		claims:   make(map[uint][]*models.Claim),
	}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) CreateSession(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.ID = m.id()
	copy := *session
	m.sessions[copy.ID] = &copy
	m.byCode[copy.Code] = copy.ID
	return nil
}

func (m *MemoryStore) SessionByCode(ctx context.Context, code string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *m.sessions[id]
	return &copy, nil
}

func (m *MemoryStore) UpdateSessionStatus(ctx context.Context, sessionID uint, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.Status = status
	return nil
}

func (m *MemoryStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	player.ID = m.id()
	copy := *player
	m.players[copy.SessionID] = append(m.players[copy.SessionID], &copy)
	return nil
}

func (m *MemoryStore) PlayerByPublicID(ctx context.Context, publicID string) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, players := range m.players {
		for _, p := range players {
			if p.PublicID == publicID {
				copy := *p
				return &copy, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) PlayersBySession(ctx context.Context, sessionID uint) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Player, 0, len(m.players[sessionID]))
	for _, p := range m.players[sessionID] {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MemoryStore) CreateDraw(ctx context.Context, draw *models.Draw) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	draw.ID = m.id()
	copy := *draw
	m.draws[copy.SessionID] = append(m.draws[copy.SessionID], &copy)
	return nil
}

func (m *MemoryStore) DrawsBySession(ctx context.Context, sessionID uint) ([]models.Draw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Draw, 0, len(m.draws[sessionID]))
	for _, d := range m.draws[sessionID] {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (m *MemoryStore) DeleteLastDraw(ctx context.Context, sessionID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	draws := m.draws[sessionID]
	if len(draws) == 0 {
		return nil
	}
	m.draws[sessionID] = draws[:len(draws)-1]
	return nil
}

func (m *MemoryStore) StartRound(ctx context.Context, sessionID uint, rule string) (*models.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	maxNumber := 0
	for _, r := range m.rounds[sessionID] {
		if r.IsActive {
			r.IsActive = false
			ended := now
			r.EndedAt = &ended
		}
		if r.Number > maxNumber {
			maxNumber = r.Number
		}
	}

	round := &models.Round{
		ID:        m.id(),
		SessionID: sessionID,
		Number:    maxNumber + 1,
		Rule:      rule,
		IsActive:  true,
		StartedAt: now,
	}
	m.rounds[sessionID] = append(m.rounds[sessionID], round)
	copy := *round
	return &copy, nil
}

func (m *MemoryStore) SetActiveRoundRule(ctx context.Context, sessionID uint, rule string) (*models.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rounds[sessionID] {
		if r.IsActive {
			r.Rule = rule
			copy := *r
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ActiveRound(ctx context.Context, sessionID uint) (*models.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.rounds[sessionID] {
		if r.IsActive {
			copy := *r
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	claim.ID = m.id()
	copy := *claim
	m.claims[copy.SessionID] = append(m.claims[copy.SessionID], &copy)
	return nil
}

func (m *MemoryStore) ClaimsBySession(ctx context.Context, sessionID uint, round *int) ([]models.Claim, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Claim, 0, len(m.claims[sessionID]))
	for _, c := range m.claims[sessionID] {
		if round != nil && c.RoundNumber != *round {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DeclaredAt.Equal(out[j].DeclaredAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].DeclaredAt.Before(out[j].DeclaredAt)
	})
	return out, nil
}

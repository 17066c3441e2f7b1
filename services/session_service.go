package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"

	"termbingo/bingo"
	"termbingo/models"
	"termbingo/store"
)

// codeAlphabet avoids 0/O and 1/I so codes survive being read aloud or typed
// from a projector.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusEnded   = "ended"
)

type SessionService struct {
	store store.Store
	cache *stateCache

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-session mutation locks, keyed by code
}

func NewSessionService(st store.Store, redisClient *redis.Client) *SessionService {
	return &SessionService{
		store: st,
		cache: newStateCache(redisClient),
		locks: make(map[string]*sync.Mutex),
	}
}

type CreateSessionRequest struct {
	Rows          int      `json:"gridRows" binding:"required,min=3,max=12"`
	Cols          int      `json:"gridCols" binding:"required,min=3,max=12"`
	Seed          string   `json:"seed"`
	WinConditions []string `json:"winConditions"`
	Terms         []string `json:"terms"`
}

type JoinSessionRequest struct {
	DisplayName string `json:"displayName" binding:"required,min=1,max=40"`
}

// lockSession serializes mutations for one session; different sessions run
// concurrently.
func (s *SessionService) lockSession(code string) func() {
	s.mu.Lock()
	l, ok := s.locks[code]
	if !ok {
		l = &sync.Mutex{}
		s.locks[code] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *SessionService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.Session, error) {
	if req.Rows < 3 || req.Rows > 12 {
		return nil, &ValidationError{Field: "gridRows", Reason: "must be between 3 and 12"}
	}
	if req.Cols < 3 || req.Cols > 12 {
		return nil, &ValidationError{Field: "gridCols", Reason: "must be between 3 and 12"}
	}

	winConditions := req.WinConditions
	if len(winConditions) == 0 {
		winConditions = []string{"row", "col"}
	}
	for _, kind := range winConditions {
		if !bingo.IsWinConditionKind(kind) {
			return nil, &ValidationError{Field: "winConditions", Reason: fmt.Sprintf("unknown kind %q", kind)}
		}
	}

	terms := req.Terms
	if len(terms) == 0 {
		terms = append([]string(nil), bingo.DefaultTermPool...)
	}
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if seen[term] {
			return nil, &ValidationError{Field: "terms", Reason: fmt.Sprintf("duplicate term %q", term)}
		}
		seen[term] = true
	}
	if len(terms) < req.Rows*req.Cols {
		return nil, ErrInsufficientPool
	}

	code, err := gonanoid.Generate(codeAlphabet, 6)
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	if seed == "" {
		if seed, err = gonanoid.Generate(codeAlphabet, 8); err != nil {
			return nil, err
		}
	}

	session := models.Session{
		Code:          code,
		Seed:          seed,
		Rows:          req.Rows,
		Cols:          req.Cols,
		WinConditions: winConditions,
		Terms:         terms,
		Status:        StatusPending,
	}
	if err := s.store.CreateSession(ctx, &session); err != nil {
		return nil, &PersistenceError{Op: "create session", Err: err}
	}

	// Every session starts on round #1 with the default rule.
	round, err := s.store.StartRound(ctx, session.ID, string(bingo.DefaultRule))
	if err != nil {
		return nil, &PersistenceError{Op: "create session", Err: err}
	}

	state := &SessionState{
		SessionID:     session.ID,
		Code:          code,
		Rows:          session.Rows,
		Cols:          session.Cols,
		WinConditions: winConditions,
		Status:        session.Status,
		PoolSize:      len(terms),
		DrawOrder:     bingo.Shuffle(terms, bingo.NewRand(bingo.DrawSeed(code, seed))),
		Draws:         []StateDraw{},
		Players:       []StatePlayer{},
		RoundNumber:   round.Number,
		RoundRule:     round.Rule,
	}
	if err := s.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to store session state in Redis: %v", err)
	}

	log.Printf("Created session %s (%dx%d, %d terms)", code, session.Rows, session.Cols, len(terms))
	return &session, nil
}

func (s *SessionService) JoinSession(ctx context.Context, code string, req *JoinSessionRequest) (*models.Player, error) {
	if req.DisplayName == "" || len(req.DisplayName) > 40 {
		return nil, &ValidationError{Field: "displayName", Reason: "must be 1-40 characters"}
	}

	unlock := s.lockSession(code)
	defer unlock()

	state, err := s.loadState(ctx, code)
	if err != nil {
		return nil, err
	}
	if state.Status == StatusEnded {
		return nil, fmt.Errorf("session has status '%s' - cannot join", state.Status)
	}
	for _, p := range state.Players {
		if p.Name == req.DisplayName {
			return nil, errors.New("player name already taken")
		}
	}

	// The cached draw order is a permutation of the session pool, so it doubles
	// as the pool for card generation. The per-player seed makes the card
	// reproducible for this session+name pair.
	rng := bingo.NewRand(bingo.CardSeed(code, req.DisplayName))
	layout, err := bingo.GenerateCard(state.DrawOrder, state.Rows, state.Cols, rng)
	if err != nil {
		return nil, err
	}

	publicID, err := gonanoid.Generate(codeAlphabet, 8)
	if err != nil {
		return nil, err
	}
	player := models.Player{
		PublicID:  publicID,
		SessionID: state.SessionID,
		Name:      req.DisplayName,
		Layout:    layout,
		JoinedAt:  time.Now(),
	}
	if err := s.store.CreatePlayer(ctx, &player); err != nil {
		return nil, &PersistenceError{Op: "join session", Err: err}
	}

	state.Players = append(state.Players, StatePlayer{PlayerID: player.PublicID, Name: player.Name})
	if err := s.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to update session state in Redis: %v", err)
		s.cache.Drop(ctx, code)
	}

	return &player, nil
}

// DrawNext appends the next term of the session's fixed draw order. Once every
// pool term has been drawn it reports done=true instead of erroring.
func (s *SessionService) DrawNext(ctx context.Context, code string, hub *Hub) (*models.Draw, bool, error) {
	unlock := s.lockSession(code)
	defer unlock()

	state, err := s.loadState(ctx, code)
	if err != nil {
		return nil, false, err
	}

	if len(state.Draws) >= len(state.DrawOrder) {
		return nil, true, nil
	}

	draw := models.Draw{
		SessionID: state.SessionID,
		Index:     len(state.Draws),
		Term:      state.DrawOrder[len(state.Draws)],
		DrawnAt:   time.Now(),
	}
	if err := s.store.CreateDraw(ctx, &draw); err != nil {
		return nil, false, &PersistenceError{Op: "draw next", Err: err}
	}

	if state.Status == StatusPending {
		if err := s.store.UpdateSessionStatus(ctx, state.SessionID, StatusRunning); err != nil {
			log.Printf("Failed to mark session %s running: %v", code, err)
		} else {
			state.Status = StatusRunning
		}
	}

	state.Draws = append(state.Draws, StateDraw{Index: draw.Index, Term: draw.Term, DrawnAt: draw.DrawnAt})
	if err := s.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to update session state in Redis: %v", err)
		s.cache.Drop(ctx, code)
	}

	if hub != nil {
		hub.BroadcastToSession(code, "draw_announced", gin.H{
			"session_id": code,
			"draw":       gin.H{"index": draw.Index, "term": draw.Term, "drawn_at": draw.DrawnAt},
		})
	}

	log.Printf("Session %s drew term %d/%d: %s", code, draw.Index+1, len(state.DrawOrder), draw.Term)
	return &draw, false, nil
}

// UndoLastDraw pops the most recent draw. Undo on an empty draw list is a
// no-op.
func (s *SessionService) UndoLastDraw(ctx context.Context, code string, hub *Hub) error {
	unlock := s.lockSession(code)
	defer unlock()

	state, err := s.loadState(ctx, code)
	if err != nil {
		return err
	}
	if len(state.Draws) == 0 {
		return nil
	}

	if err := s.store.DeleteLastDraw(ctx, state.SessionID); err != nil {
		return &PersistenceError{Op: "undo draw", Err: err}
	}

	state.Draws = state.Draws[:len(state.Draws)-1]
	if err := s.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to update session state in Redis: %v", err)
		s.cache.Drop(ctx, code)
	}

	if hub != nil {
		hub.BroadcastToSession(code, "draw_update", gin.H{
			"session_id": code,
			"draws":      state.Draws,
		})
	}

	return nil
}

// GetState returns the live session state, reading through to the Store when
// the cache has no entry.
func (s *SessionService) GetState(ctx context.Context, code string) (*SessionState, error) {
	return s.loadState(ctx, code)
}

// GetPlayer looks a player up by public id, for websocket access checks.
func (s *SessionService) GetPlayer(ctx context.Context, publicID string) (*models.Player, error) {
	player, err := s.store.PlayerByPublicID(ctx, publicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return player, err
}

// loadState is the read-through path: cache hit wins, otherwise the state is
// rebuilt from the Store (session, players, draws, active round) and
// re-stored. The draw order is re-derived from the persisted seed, so it is
// identical across restarts.
func (s *SessionService) loadState(ctx context.Context, code string) (*SessionState, error) {
	if state := s.cache.Get(ctx, code); state != nil {
		return state, nil
	}

	session, err := s.store.SessionByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	players, err := s.store.PlayersBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	draws, err := s.store.DrawsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	round, err := s.store.ActiveRound(ctx, session.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Pre-round-tracking sessions get a synthetic round #1.
		log.Printf("Session %s has no active round, synthesizing round #1", code)
		round, err = s.store.StartRound(ctx, session.ID, string(bingo.DefaultRule))
	}
	if err != nil {
		return nil, err
	}

	state := &SessionState{
		SessionID:     session.ID,
		Code:          session.Code,
		Rows:          session.Rows,
		Cols:          session.Cols,
		WinConditions: session.WinConditions,
		Status:        session.Status,
		PoolSize:      len(session.Terms),
		DrawOrder:     bingo.Shuffle(session.Terms, bingo.NewRand(bingo.DrawSeed(session.Code, session.Seed))),
		Draws:         make([]StateDraw, 0, len(draws)),
		Players:       make([]StatePlayer, 0, len(players)),
		RoundNumber:   round.Number,
		RoundRule:     round.Rule,
	}
	for _, d := range draws {
		state.Draws = append(state.Draws, StateDraw{Index: d.Index, Term: d.Term, DrawnAt: d.DrawnAt})
	}
	for _, p := range players {
		state.Players = append(state.Players, StatePlayer{PlayerID: p.PublicID, Name: p.Name})
	}

	if err := s.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to repopulate session state in Redis: %v", err)
	}
	log.Printf("Rebuilt session state for %s from storage: %d draws, %d players", code, len(state.Draws), len(state.Players))
	return state, nil
}

package services

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"termbingo/bingo"
	"termbingo/models"
	"termbingo/store"
)

// RoundService tracks the single active round per session. Starting a new
// round deactivates the previous one; changing the rule mutates the active
// round in place. Both write the Store first and only then the cache.
type RoundService struct {
	store    store.Store
	sessions *SessionService
}

func NewRoundService(st store.Store, sessions *SessionService) *RoundService {
	return &RoundService{store: st, sessions: sessions}
}

type RoundRequest struct {
	Rule string `json:"rule" binding:"required"`
}

// ActiveRound reports the round a claim declared right now would be judged
// against.
func (s *RoundService) ActiveRound(ctx context.Context, code string) (*models.Round, error) {
	state, err := s.sessions.loadState(ctx, code)
	if err != nil {
		return nil, err
	}
	return &models.Round{
		SessionID: state.SessionID,
		Number:    state.RoundNumber,
		Rule:      state.RoundRule,
		IsActive:  true,
	}, nil
}

// StartRound ends the current round and begins round max+1 with the given
// rule.
func (s *RoundService) StartRound(ctx context.Context, code string, ruleName string, hub *Hub) (*models.Round, error) {
	rule, ok := bingo.ParseRule(ruleName)
	if !ok {
		return nil, &ValidationError{Field: "rule", Reason: "must be one of single-line, two-lines, three-lines, full-card"}
	}

	unlock := s.sessions.lockSession(code)
	defer unlock()

	state, err := s.sessions.loadState(ctx, code)
	if err != nil {
		return nil, err
	}

	round, err := s.store.StartRound(ctx, state.SessionID, string(rule))
	if err != nil {
		return nil, &PersistenceError{Op: "start round", Err: err}
	}

	state.RoundNumber = round.Number
	state.RoundRule = round.Rule
	if err := s.sessions.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to update session state in Redis: %v", err)
		s.sessions.cache.Drop(ctx, code)
	}

	if hub != nil {
		hub.BroadcastToSession(code, "round_start", gin.H{
			"session_id": code,
			"number":     round.Number,
			"rule":       round.Rule,
		})
	}

	log.Printf("Session %s started round %d (%s)", code, round.Number, round.Rule)
	return round, nil
}

// SetRule changes the active round's rule in place; the round number does not
// change.
func (s *RoundService) SetRule(ctx context.Context, code string, ruleName string, hub *Hub) (*models.Round, error) {
	rule, ok := bingo.ParseRule(ruleName)
	if !ok {
		return nil, &ValidationError{Field: "rule", Reason: "must be one of single-line, two-lines, three-lines, full-card"}
	}

	unlock := s.sessions.lockSession(code)
	defer unlock()

	// loadState synthesizes round #1 for sessions that somehow have none, so
	// ErrNotFound below only fires if the session itself is gone.
	state, err := s.sessions.loadState(ctx, code)
	if err != nil {
		return nil, err
	}

	round, err := s.store.SetActiveRoundRule(ctx, state.SessionID, string(rule))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoActiveRound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "set round rule", Err: err}
	}

	state.RoundNumber = round.Number
	state.RoundRule = round.Rule
	if err := s.sessions.cache.Put(ctx, state); err != nil {
		log.Printf("Failed to update session state in Redis: %v", err)
		s.sessions.cache.Drop(ctx, code)
	}

	if hub != nil {
		hub.BroadcastToSession(code, "rule_change", gin.H{
			"session_id": code,
			"number":     round.Number,
			"rule":       round.Rule,
		})
	}

	log.Printf("Session %s round %d rule changed to %s", code, round.Number, round.Rule)
	return round, nil
}

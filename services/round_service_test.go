package services

import (
	"context"
	"errors"
	"testing"

	"termbingo/bingo"
)

func TestSessionStartsOnRoundOne(t *testing.T) {
	env := newTestEnv(t)
	session := env.createSession(t, 3, 3, smallPool(9))

	round, err := env.rounds.ActiveRound(context.Background(), session.Code)
	if err != nil {
		t.Fatalf("ActiveRound: %v", err)
	}
	if round.Number != 1 {
		t.Fatalf("fresh session active round number = %d, want 1", round.Number)
	}
	if round.Rule != string(bingo.DefaultRule) {
		t.Fatalf("fresh session rule = %s, want %s", round.Rule, bingo.DefaultRule)
	}
}

func TestStartRoundIncrementsNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	second, err := env.rounds.StartRound(ctx, session.Code, "two-lines", nil)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if second.Number != 2 || second.Rule != "two-lines" {
		t.Fatalf("got round %d (%s), want round 2 (two-lines)", second.Number, second.Rule)
	}

	third, err := env.rounds.StartRound(ctx, session.Code, "full-card", nil)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if third.Number != 3 {
		t.Fatalf("got round %d, want 3", third.Number)
	}

	// Only the newest round may be active.
	active, err := env.store.ActiveRound(ctx, third.SessionID)
	if err != nil {
		t.Fatalf("store.ActiveRound: %v", err)
	}
	if active.Number != 3 {
		t.Fatalf("active round in storage = %d, want 3", active.Number)
	}
}

func TestSetRuleKeepsRoundNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	if _, err := env.rounds.StartRound(ctx, session.Code, "two-lines", nil); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	round, err := env.rounds.SetRule(ctx, session.Code, "full-card", nil)
	if err != nil {
		t.Fatalf("SetRule: %v", err)
	}
	if round.Number != 2 {
		t.Fatalf("SetRule changed the round number to %d", round.Number)
	}
	if round.Rule != "full-card" {
		t.Fatalf("SetRule rule = %s, want full-card", round.Rule)
	}
}

func TestRoundStateSurvivesCacheFlush(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	if _, err := env.rounds.StartRound(ctx, session.Code, "two-lines", nil); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := env.rounds.SetRule(ctx, session.Code, "three-lines", nil); err != nil {
		t.Fatalf("SetRule: %v", err)
	}

	env.redis.FlushAll()

	round, err := env.rounds.ActiveRound(ctx, session.Code)
	if err != nil {
		t.Fatalf("ActiveRound after flush: %v", err)
	}
	if round.Number != 2 || round.Rule != "three-lines" {
		t.Fatalf("after flush got round %d (%s), want round 2 (three-lines)", round.Number, round.Rule)
	}
}

func TestRoundRuleValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	var validationErr *ValidationError
	if _, err := env.rounds.StartRound(ctx, session.Code, "five-lines", nil); !errors.As(err, &validationErr) {
		t.Fatalf("StartRound with unknown rule: got %v, want ValidationError", err)
	}
	if _, err := env.rounds.SetRule(ctx, session.Code, "", nil); !errors.As(err, &validationErr) {
		t.Fatalf("SetRule with empty rule: got %v, want ValidationError", err)
	}
	if _, err := env.rounds.StartRound(ctx, "NOSUCH", "full-card", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("StartRound on unknown session: got %v, want ErrNotFound", err)
	}
}

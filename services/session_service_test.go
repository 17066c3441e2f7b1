package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"termbingo/models"
	"termbingo/store"
)

type testEnv struct {
	sessions *SessionService
	rounds   *RoundService
	claims   *ClaimService
	store    *store.MemoryStore
	redis    *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewMemoryStore()
	sessions := NewSessionService(st, rdb)
	return &testEnv{
		sessions: sessions,
		rounds:   NewRoundService(st, sessions),
		claims:   NewClaimService(st, sessions),
		store:    st,
		redis:    mr,
	}
}

// smallPool returns n distinct terms.
func smallPool(n int) []string {
	terms := make([]string, n)
	for i := range terms {
		terms[i] = fmt.Sprintf("term-%02d", i)
	}
	return terms
}

func (e *testEnv) createSession(t *testing.T, rows, cols int, terms []string) *models.Session {
	t.Helper()
	session, err := e.sessions.CreateSession(context.Background(), &CreateSessionRequest{
		Rows:  rows,
		Cols:  cols,
		Terms: terms,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return session
}

func TestCreateSessionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var validationErr *ValidationError
	if _, err := env.sessions.CreateSession(ctx, &CreateSessionRequest{Rows: 2, Cols: 5}); !errors.As(err, &validationErr) {
		t.Fatalf("rows=2 should fail validation, got %v", err)
	}
	if _, err := env.sessions.CreateSession(ctx, &CreateSessionRequest{Rows: 3, Cols: 13}); !errors.As(err, &validationErr) {
		t.Fatalf("cols=13 should fail validation, got %v", err)
	}
	if _, err := env.sessions.CreateSession(ctx, &CreateSessionRequest{
		Rows: 3, Cols: 3, WinConditions: []string{"row", "hexagon"},
	}); !errors.As(err, &validationErr) {
		t.Fatalf("unknown win condition should fail validation, got %v", err)
	}
	if _, err := env.sessions.CreateSession(ctx, &CreateSessionRequest{
		Rows: 3, Cols: 3, Terms: []string{"a", "b", "a", "c", "d", "e", "f", "g", "h"},
	}); !errors.As(err, &validationErr) {
		t.Fatalf("duplicate terms should fail validation, got %v", err)
	}
	if _, err := env.sessions.CreateSession(ctx, &CreateSessionRequest{
		Rows: 3, Cols: 3, Terms: smallPool(8),
	}); !errors.Is(err, ErrInsufficientPool) {
		t.Fatalf("8 terms on a 3x3 grid should fail with ErrInsufficientPool, got %v", err)
	}
}

func TestDrawSequenceExhaustsPoolWithoutDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	seen := make(map[string]bool)
	for i := 0; i < 9; i++ {
		draw, done, err := env.sessions.DrawNext(ctx, session.Code, nil)
		if err != nil {
			t.Fatalf("DrawNext #%d: %v", i, err)
		}
		if done {
			t.Fatalf("DrawNext #%d reported done with terms remaining", i)
		}
		if draw.Index != i {
			t.Fatalf("draw #%d has index %d", i, draw.Index)
		}
		if seen[draw.Term] {
			t.Fatalf("term %q drawn twice", draw.Term)
		}
		seen[draw.Term] = true
	}

	_, done, err := env.sessions.DrawNext(ctx, session.Code, nil)
	if err != nil {
		t.Fatalf("DrawNext after exhaustion: %v", err)
	}
	if !done {
		t.Fatalf("expected done=true once the pool is exhausted")
	}
}

func TestUndoThenRedrawReusesIndexAndTerm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(12))

	for i := 0; i < 3; i++ {
		if _, _, err := env.sessions.DrawNext(ctx, session.Code, nil); err != nil {
			t.Fatalf("DrawNext: %v", err)
		}
	}
	last, _, err := env.sessions.DrawNext(ctx, session.Code, nil)
	if err != nil {
		t.Fatalf("DrawNext: %v", err)
	}

	if err := env.sessions.UndoLastDraw(ctx, session.Code, nil); err != nil {
		t.Fatalf("UndoLastDraw: %v", err)
	}
	state, err := env.sessions.GetState(ctx, session.Code)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Draws) != 3 {
		t.Fatalf("after undo expected 3 draws, got %d", len(state.Draws))
	}

	// The draw order is fixed, so redrawing yields the undone term again.
	redraw, _, err := env.sessions.DrawNext(ctx, session.Code, nil)
	if err != nil {
		t.Fatalf("DrawNext after undo: %v", err)
	}
	if redraw.Index != last.Index || redraw.Term != last.Term {
		t.Fatalf("redraw got index %d term %q, want index %d term %q", redraw.Index, redraw.Term, last.Index, last.Term)
	}
}

func TestUndoOnEmptyDrawListIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(9))

	if err := env.sessions.UndoLastDraw(ctx, session.Code, nil); err != nil {
		t.Fatalf("UndoLastDraw on empty list: %v", err)
	}
	state, err := env.sessions.GetState(ctx, session.Code)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Draws) != 0 {
		t.Fatalf("expected 0 draws, got %d", len(state.Draws))
	}
}

func TestDrawSequenceSurvivesCacheFlush(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(10))

	drawn := make(map[string]bool)
	for i := 0; i < 4; i++ {
		draw, _, err := env.sessions.DrawNext(ctx, session.Code, nil)
		if err != nil {
			t.Fatalf("DrawNext: %v", err)
		}
		drawn[draw.Term] = true
	}

	// Simulate a restart: the cache is gone, storage is not.
	env.redis.FlushAll()

	draw, done, err := env.sessions.DrawNext(ctx, session.Code, nil)
	if err != nil {
		t.Fatalf("DrawNext after flush: %v", err)
	}
	if done {
		t.Fatalf("unexpected done after flush")
	}
	if draw.Index != 4 {
		t.Fatalf("draw after flush has index %d, want 4", draw.Index)
	}
	if drawn[draw.Term] {
		t.Fatalf("term %q drawn twice across a cache flush", draw.Term)
	}

	state, err := env.sessions.GetState(ctx, session.Code)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Draws) != 5 {
		t.Fatalf("expected 5 draws after flush, got %d", len(state.Draws))
	}
	if state.Status != StatusRunning {
		t.Fatalf("expected status running, got %s", state.Status)
	}
}

func TestJoinSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.createSession(t, 3, 3, smallPool(20))

	player, err := env.sessions.JoinSession(ctx, session.Code, &JoinSessionRequest{DisplayName: "Maria"})
	if err != nil {
		t.Fatalf("JoinSession: %v", err)
	}
	if player.PublicID == "" {
		t.Fatalf("expected a player id")
	}
	if len(player.Layout) != 3 || len(player.Layout[0]) != 3 {
		t.Fatalf("expected a 3x3 layout, got %dx%d", len(player.Layout), len(player.Layout[0]))
	}

	seen := make(map[string]bool)
	for _, row := range player.Layout {
		for _, term := range row {
			if seen[term] {
				t.Fatalf("duplicate term on card: %q", term)
			}
			seen[term] = true
		}
	}

	if _, err := env.sessions.JoinSession(ctx, session.Code, &JoinSessionRequest{DisplayName: "Maria"}); err == nil {
		t.Fatalf("expected duplicate display name to be rejected")
	}

	if _, err := env.sessions.JoinSession(ctx, "NOSUCH", &JoinSessionRequest{DisplayName: "Ana"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown session: got %v, want ErrNotFound", err)
	}

	state, err := env.sessions.GetState(ctx, session.Code)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Players) != 1 || state.Players[0].Name != "Maria" {
		t.Fatalf("state players = %+v, want one player Maria", state.Players)
	}
}

func TestGetStateUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.sessions.GetState(context.Background(), "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

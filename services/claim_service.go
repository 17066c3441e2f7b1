package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"termbingo/bingo"
	"termbingo/models"
	"termbingo/store"
)

// ClaimService adjudicates win declarations and derives the read-side
// winners/leaderboard projection. Claims are an append-only log: it is the
// sole writer, the stats projection only reads.
type ClaimService struct {
	store    store.Store
	sessions *SessionService
}

func NewClaimService(st store.Store, sessions *SessionService) *ClaimService {
	return &ClaimService{store: st, sessions: sessions}
}

type SubmitClaimRequest struct {
	PlayerID          string       `json:"player_id" binding:"required"`
	PlayerName        string       `json:"player_name" binding:"required"`
	Layout            [][]string   `json:"layout" binding:"required"`
	Marks             []bingo.Mark `json:"marks"`
	ClientReportedWin bool         `json:"client_reported_win"`
}

type RoundWinner struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	ClaimID    string    `json:"claim_id"`
	DeclaredAt time.Time `json:"declared_at"`
}

type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}

type SessionStats struct {
	WinnersByRound map[int][]RoundWinner `json:"winners_by_round"`
	Leaderboard    []LeaderboardEntry    `json:"leaderboard"`
	Totals         StatsTotals           `json:"totals"`
}

type StatsTotals struct {
	Rounds      int `json:"rounds"`
	Winners     int `json:"winners"`
	ValidClaims int `json:"valid_claims"`
}

// SubmitClaim validates the declaration, resolves the round active right now,
// scores the marks against that round's rule and persists the verdict.
// Duplicate payloads intentionally create new claim rows: the log records
// declarations, not deduplicated wins.
func (s *ClaimService) SubmitClaim(ctx context.Context, code string, req *SubmitClaimRequest, hub *Hub) (*models.Claim, error) {
	if req.PlayerID == "" {
		return nil, &ValidationError{Field: "player_id", Reason: "required"}
	}
	if req.PlayerName == "" {
		return nil, &ValidationError{Field: "player_name", Reason: "required"}
	}
	if len(req.Layout) == 0 || len(req.Layout[0]) == 0 {
		return nil, &ValidationError{Field: "layout", Reason: "must be a non-empty grid"}
	}
	width := len(req.Layout[0])
	for _, row := range req.Layout {
		if len(row) != width {
			return nil, &ValidationError{Field: "layout", Reason: "rows must all have the same length"}
		}
	}

	// The live active round, not a value cached at card time: a rule change
	// mid-round applies to every claim declared after it.
	state, err := s.sessions.loadState(ctx, code)
	if err != nil {
		return nil, err
	}

	rule, ok := bingo.ParseRule(state.RoundRule)
	if !ok {
		rule = bingo.DefaultRule
	}
	verdict := models.VerdictInvalid
	if bingo.Evaluate(req.Layout, req.Marks, rule) {
		verdict = models.VerdictValid
	}

	marks := req.Marks
	if marks == nil {
		marks = []bingo.Mark{}
	}
	claim := models.Claim{
		PublicID:          uuid.NewString(),
		SessionID:         state.SessionID,
		PlayerID:          req.PlayerID,
		PlayerName:        req.PlayerName,
		Layout:            req.Layout,
		Marks:             marks,
		ClientReportedWin: req.ClientReportedWin,
		RoundNumber:       state.RoundNumber,
		RoundRule:         state.RoundRule,
		Verdict:           verdict,
		DeclaredAt:        time.Now(),
	}
	if err := s.store.CreateClaim(ctx, &claim); err != nil {
		return nil, &PersistenceError{Op: "submit claim", Err: err}
	}

	if hub != nil && verdict == models.VerdictValid {
		hub.BroadcastToSession(code, "claim_result", gin.H{
			"session_id":   code,
			"player_id":    claim.PlayerID,
			"player_name":  claim.PlayerName,
			"round_number": claim.RoundNumber,
			"verdict":      claim.Verdict,
		})
	}

	log.Printf("Session %s claim by %s (%s): round %d %s -> %s (client said %v)",
		code, claim.PlayerName, claim.PlayerID, claim.RoundNumber, claim.RoundRule, verdict, req.ClientReportedWin)
	return &claim, nil
}

// ListClaims returns the full declaration log, oldest first, optionally
// filtered to one round.
func (s *ClaimService) ListClaims(ctx context.Context, code string, round *int) ([]models.Claim, error) {
	state, err := s.sessions.loadState(ctx, code)
	if err != nil {
		return nil, err
	}
	claims, err := s.store.ClaimsBySession(ctx, state.SessionID, round)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []models.Claim{}
	}
	return claims, nil
}

// ComputeStats recomputes the winners/leaderboard projection from scratch:
// the first valid claim per (round, player) is that player's win for the
// round, later valid claims by the same player in the same round add nothing.
func (s *ClaimService) ComputeStats(ctx context.Context, code string, round *int) (*SessionStats, error) {
	claims, err := s.ListClaims(ctx, code, round)
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{
		WinnersByRound: make(map[int][]RoundWinner),
		Leaderboard:    []LeaderboardEntry{},
	}

	type roundPlayer struct {
		round    int
		playerID string
	}
	seen := make(map[roundPlayer]bool)
	wins := make(map[string]int)
	names := make(map[string]string)

	for _, c := range claims {
		if c.Verdict != models.VerdictValid {
			continue
		}
		stats.Totals.ValidClaims++

		key := roundPlayer{c.RoundNumber, c.PlayerID}
		if seen[key] {
			continue
		}
		seen[key] = true

		stats.WinnersByRound[c.RoundNumber] = append(stats.WinnersByRound[c.RoundNumber], RoundWinner{
			PlayerID:   c.PlayerID,
			PlayerName: c.PlayerName,
			ClaimID:    c.PublicID,
			DeclaredAt: c.DeclaredAt,
		})
		wins[c.PlayerID]++
		names[c.PlayerID] = c.PlayerName
	}

	for playerID, count := range wins {
		stats.Leaderboard = append(stats.Leaderboard, LeaderboardEntry{
			PlayerID:   playerID,
			PlayerName: names[playerID],
			Wins:       count,
		})
	}
	sort.Slice(stats.Leaderboard, func(i, j int) bool {
		if stats.Leaderboard[i].Wins != stats.Leaderboard[j].Wins {
			return stats.Leaderboard[i].Wins > stats.Leaderboard[j].Wins
		}
		return stats.Leaderboard[i].PlayerName < stats.Leaderboard[j].PlayerName
	})

	stats.Totals.Rounds = len(stats.WinnersByRound)
	stats.Totals.Winners = len(wins)
	return stats, nil
}

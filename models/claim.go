package models

import (
	"time"

	"gorm.io/gorm"

	"termbingo/bingo"
)

// Claim verdicts. Claims are an append-only log of declarations: a player may
// shout bingo more than once and every declaration is retained.
const (
	VerdictUnknown = "unknown"
	VerdictValid   = "valid"
	VerdictInvalid = "invalid"
)

type Claim struct {
	ID                uint           `json:"-" gorm:"primaryKey"`
	PublicID          string         `json:"claim_id" gorm:"uniqueIndex;not null"`
	SessionID         uint           `json:"-" gorm:"not null;index"`
	PlayerID          string         `json:"player_id" gorm:"not null;index"`
	PlayerName        string         `json:"player_name" gorm:"not null"`
	Layout            [][]string     `json:"layout" gorm:"serializer:json;not null"` // snapshot at claim time
	Marks             []bingo.Mark   `json:"marks" gorm:"serializer:json;not null"`
	ClientReportedWin bool           `json:"client_reported_win" gorm:"not null"` // informational only
	RoundNumber       int            `json:"round_number" gorm:"not null"`
	RoundRule         string         `json:"round_rule" gorm:"not null"`
	Verdict           string         `json:"verdict" gorm:"not null;default:'unknown'"`
	DeclaredAt        time.Time      `json:"declared_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Session Session `json:"-"`
}

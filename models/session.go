package models

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Code          string         `json:"code" gorm:"uniqueIndex;not null"`
	Seed          string         `json:"-" gorm:"not null"`
	Rows          int            `json:"rows" gorm:"not null"`
	Cols          int            `json:"cols" gorm:"not null"`
	WinConditions []string       `json:"win_conditions" gorm:"serializer:json;not null"`
	Terms         []string       `json:"-" gorm:"serializer:json;not null"` // term pool snapshot for this session
	Status        string         `json:"status" gorm:"not null;default:'pending'"` // pending, running, ended
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Players []Player `json:"players,omitempty" gorm:"foreignKey:SessionID"`
	Draws   []Draw   `json:"draws,omitempty" gorm:"foreignKey:SessionID"`
	Rounds  []Round  `json:"rounds,omitempty" gorm:"foreignKey:SessionID"`
	Claims  []Claim  `json:"claims,omitempty" gorm:"foreignKey:SessionID"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Round struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	SessionID uint           `json:"-" gorm:"not null;index"`
	Number    int            `json:"number" gorm:"not null"`
	Rule      string         `json:"rule" gorm:"not null"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:false"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   *time.Time     `json:"ended_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Session Session `json:"-"`
}

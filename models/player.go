package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	PublicID  string         `json:"player_id" gorm:"uniqueIndex;not null"`
	SessionID uint           `json:"-" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Layout    [][]string     `json:"layout" gorm:"serializer:json;not null"`
	JoinedAt  time.Time      `json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Session Session `json:"-"`
}

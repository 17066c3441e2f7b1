package models

import (
	"time"

	"gorm.io/gorm"
)

type Draw struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	SessionID uint           `json:"-" gorm:"not null;index"`
	Index     int            `json:"index" gorm:"not null;column:draw_index"`
	Term      string         `json:"term" gorm:"not null"`
	DrawnAt   time.Time      `json:"drawn_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Session Session `json:"-"`
}

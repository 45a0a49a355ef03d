// Package models defines the persisted entities.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the embedded base for every entity. It mirrors gorm.Model but
// tags the fields so responses serialize snake_case like everything else,
// and never leak the soft-delete marker.
type Model struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

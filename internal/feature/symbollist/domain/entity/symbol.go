// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// FnoSymbol is one row of the F&O eligibility reference table.
type FnoSymbol struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"size:32;not null;uniqueIndex"`
	Underlying string    `gorm:"size:255;not null;default:''"`
	IsActive   bool      `gorm:"not null;default:true"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name used by the gorm adapter.
func (FnoSymbol) TableName() string {
	return "fno_symbols"
}

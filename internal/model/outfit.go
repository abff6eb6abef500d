package model

import "time"

// Outfit is an append-only record of outfit advice, either generated by
// the AI path or saved explicitly by the client.
type Outfit struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	UserID uint      `json:"user_id" gorm:"index;not null"`
	City   string    `json:"city" gorm:"size:100;not null"`
	Advice string    `json:"advice" gorm:"type:text;not null"`
	Date   time.Time `json:"date" gorm:"index"`
}

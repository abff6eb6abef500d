package model

import "time"

// WeatherQuery is an append-only record of a weather lookup made by a
// user. Rows are never mutated or deleted.
type WeatherQuery struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	City        string    `json:"ciudad" gorm:"size:100;not null"`
	Temperature float64   `json:"temperatura" gorm:"not null"`
	Description string    `json:"descripcion" gorm:"size:100"`
	Timestamp   time.Time `json:"timestamp" gorm:"index"`
}

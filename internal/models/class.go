package models

import "time"

// Class represents a language class run by the academy.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Language  string    `db:"language" json:"language"` // e.g. ENGLISH, CHINESE, JAPANESE
	Level     *string   `db:"level" json:"level,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	Language string
	Status   string
	Search   string
	Page     int
	PageSize int
}

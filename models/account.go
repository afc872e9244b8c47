package models

import "time"

// Account is a funded identity. Identity is the opaque string handed to
// us by the authentication layer; the ledger only ever compares it.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Identity  string    `gorm:"uniqueIndex;not null" json:"identity"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

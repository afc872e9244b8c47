package models

import "time"

// LobbyRecord mirrors a ledger lobby for audit. The in-memory ledger is
// the source of truth during operation; rows here survive restarts.
type LobbyRecord struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Capacity      int       `json:"capacity"`
	DepositAmount float64   `json:"deposit_amount"`
	Creator       string    `gorm:"index" json:"creator"`
	Canceled      bool      `json:"canceled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

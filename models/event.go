package models

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent is one committed ledger operation, persisted in emission
// order per lobby. Payload holds the full event JSON.
type LedgerEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	LobbyID   uint64         `gorm:"index" json:"lobby_id"`
	Type      string         `json:"type"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

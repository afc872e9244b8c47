package models

import "time"

type TransactionType string

const (
	TopUpTransaction   TransactionType = "topup"
	CashOutTransaction TransactionType = "cashout"
	HoldTransaction    TransactionType = "hold"
	ReleaseTransaction TransactionType = "release"
)

// Transaction records every balance movement on an account, including
// the escrow hold/release pair around a lobby deposit and refund.
type Transaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Identity     string          `gorm:"index" json:"identity"`
	LobbyID      uint64          `json:"lobby_id,omitempty"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	BalanceAfter float64         `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

package services

import (
	"log"

	"github.com/stakeroom/lobby-backend/config"
	"github.com/stakeroom/lobby-backend/ledger"

	"gorm.io/gorm"
)

var (
	Ledger   *ledger.LobbyLedger
	EventHub *Hub
)

// InitLedgerService builds the process-wide lobby ledger with its
// escrow and event sinks. The capacity and deposit amount are fixed
// here for the life of the process.
func InitLedgerService(db *gorm.DB) {
	EventHub = NewHub()
	Ledger = ledger.New(
		config.C.LobbyCapacity,
		config.C.DepositAmount,
		NewAccountEscrow(db),
		ledger.Sinks{NewAuditSink(db), EventHub},
	)
	log.Printf("[Init] Lobby ledger ready (capacity=%d, deposit=%v)", config.C.LobbyCapacity, config.C.DepositAmount)
}

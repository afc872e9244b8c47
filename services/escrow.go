package services

import (
	"fmt"

	"github.com/stakeroom/lobby-backend/models"
	"github.com/stakeroom/lobby-backend/utils/logger"

	"gorm.io/gorm"
)

// AccountEscrow implements ledger.Escrow on top of the accounts table.
// A hold debits the participant's balance into escrow, a release credits
// it back; both write a transaction row in the same DB transaction so
// the audit trail and the balance can never disagree.
type AccountEscrow struct {
	db *gorm.DB
}

func NewAccountEscrow(db *gorm.DB) *AccountEscrow {
	return &AccountEscrow{db: db}
}

func (e *AccountEscrow) Hold(identity string, lobbyID uint64, amount float64) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var acct models.Account
		if err := tx.Where("identity = ?", identity).First(&acct).Error; err != nil {
			return fmt.Errorf("account %s: %w", identity, err)
		}
		if acct.Balance < amount {
			return fmt.Errorf("account %s: balance %.2f below hold amount %.2f", identity, acct.Balance, amount)
		}

		acct.Balance -= amount
		if err := tx.Save(&acct).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			Identity:     identity,
			LobbyID:      lobbyID,
			Type:         models.HoldTransaction,
			Amount:       amount,
			BalanceAfter: acct.Balance,
		}).Error
	})
}

func (e *AccountEscrow) Release(identity string, lobbyID uint64, amount float64) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var acct models.Account
		if err := tx.Where("identity = ?", identity).First(&acct).Error; err != nil {
			return fmt.Errorf("account %s: %w", identity, err)
		}

		acct.Balance += amount
		if err := tx.Save(&acct).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			Identity:     identity,
			LobbyID:      lobbyID,
			Type:         models.ReleaseTransaction,
			Amount:       amount,
			BalanceAfter: acct.Balance,
		}).Error
	})
	if err != nil {
		// The ledger has already committed its side; this payout now
		// needs manual reconciliation against the transaction rows.
		logger.Errorf("escrow release failed for %s (lobby %d, amount %.2f): %v", identity, lobbyID, amount, err)
	}
	return err
}

package services

import (
	"encoding/json"

	"github.com/stakeroom/lobby-backend/ledger"
	"github.com/stakeroom/lobby-backend/models"
	"github.com/stakeroom/lobby-backend/utils/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditSink persists every committed ledger event as a row, and keeps
// the lobby_records table in step with creations and cancellations.
// Emit is called in per-lobby commit order, so row order is audit order.
// Persistence is best effort: a failed write is logged, never propagated
// back into the operation that already committed.
type AuditSink struct {
	db *gorm.DB
}

func NewAuditSink(db *gorm.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (s *AuditSink) Emit(e ledger.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Errorf("audit: marshal event %s for lobby %d: %v", e.Type, e.LobbyID, err)
		return
	}

	row := models.LedgerEvent{
		LobbyID: e.LobbyID,
		Type:    string(e.Type),
		Payload: datatypes.JSON(payload),
	}
	if err := s.db.Create(&row).Error; err != nil {
		logger.Errorf("audit: persist event %s for lobby %d: %v", e.Type, e.LobbyID, err)
	}

	switch e.Type {
	case ledger.EventLobbyCreated:
		rec := models.LobbyRecord{
			ID:            e.LobbyID,
			Capacity:      e.Capacity,
			DepositAmount: e.DepositAmount,
			Creator:       e.Identity,
			Canceled:      false,
		}
		if err := s.db.Create(&rec).Error; err != nil {
			logger.Errorf("audit: persist lobby record %d: %v", e.LobbyID, err)
		}
	case ledger.EventLobbyCanceled:
		if err := s.db.Model(&models.LobbyRecord{}).Where("id = ?", e.LobbyID).Update("canceled", true).Error; err != nil {
			logger.Errorf("audit: mark lobby record %d canceled: %v", e.LobbyID, err)
		}
	}
}

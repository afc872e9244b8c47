package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stakeroom/lobby-backend/ledger"
	"github.com/stakeroom/lobby-backend/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps ledger rejections to HTTP statuses so callers can
// branch on cause without parsing messages.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrLobbyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrLobbyCanceled),
		errors.Is(err, ledger.ErrLobbyFull),
		errors.Is(err, ledger.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTransferFailed):
		return http.StatusBadGateway
	case errors.Is(err, ledger.ErrCounterOverflow):
		return http.StatusInternalServerError
	default:
		// InvalidCapacity, InvalidDepositAmount, IncorrectAmount,
		// NotRegistered, InsufficientDeposit
		return http.StatusBadRequest
	}
}

func lobbyID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lobby id"})
		return 0, false
	}
	return id, true
}

// CreateLobby opens a new lobby. Capacity and deposit amount must match
// the configured constants; they are part of the request so clients
// state the terms they expect.
func CreateLobby(c *gin.Context) {
	var req struct {
		Capacity      int     `json:"capacity" binding:"required"`
		DepositAmount float64 `json:"depositAmount" binding:"required"`
		Creator       string  `json:"creator" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := services.Ledger.CreateLobby(req.Capacity, req.DepositAmount, req.Creator)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lobbyId": id})
}

// Enroll adds a participant to a lobby roster
func Enroll(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	var req struct {
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Ledger.Enroll(id, req.Identity); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	count, _ := services.Ledger.EnrolledCount(id)
	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "enrolled": count})
}

// Deposit escrows one unit amount for an enrolled participant
func Deposit(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	var req struct {
		Identity string  `json:"identity" binding:"required"`
		Amount   float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Ledger.Deposit(id, req.Identity, req.Amount); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	balance, _ := services.Ledger.DepositOf(id, req.Identity)
	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "identity": req.Identity, "deposited": balance})
}

// CancelLobby is restricted to the lobby creator
func CancelLobby(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	var req struct {
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Ledger.CancelLobby(id, req.Identity); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "canceled": true})
}

// Withdraw refunds a participant's escrowed balance and removes them
// from the roster. A 502 here means the bookkeeping committed but the
// payout itself failed; see the transaction rows for reconciliation.
func Withdraw(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	var req struct {
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Ledger.Withdraw(id, req.Identity); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "identity": req.Identity, "withdrawn": true})
}

// StartGame signals readiness; it does not transition any lobby state
func StartGame(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	var req struct {
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Ledger.StartGame(id, req.Identity); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "identity": req.Identity, "started": true})
}

// LobbyStatus returns current lobby info
func LobbyStatus(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	count, err := services.Ledger.EnrolledCount(id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	canceled, _ := services.Ledger.IsCanceled(id)
	creator, _ := services.Ledger.Creator(id)

	c.JSON(http.StatusOK, gin.H{
		"lobbyId":  id,
		"enrolled": count,
		"canceled": canceled,
		"creator":  creator,
	})
}

// DepositOf returns a participant's cumulative escrowed amount
func DepositOf(c *gin.Context) {
	id, ok := lobbyID(c)
	if !ok {
		return
	}

	amount, err := services.Ledger.DepositOf(id, c.Param("identity"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lobbyId": id, "identity": c.Param("identity"), "deposit": amount})
}

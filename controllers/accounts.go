package controllers

import (
	"net/http"

	"github.com/stakeroom/lobby-backend/config"
	"github.com/stakeroom/lobby-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAccount registers a new funded identity
func RegisterAccount(c *gin.Context) {
	var acct models.Account
	if err := c.ShouldBindJSON(&acct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// check if already exists
	var existing models.Account
	if err := config.DB.Where("identity = ?", acct.Identity).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		return
	}

	if err := config.DB.Create(&acct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, acct)
}

// GetAccount fetches an account by identity
func GetAccount(c *gin.Context) {
	identity := c.Param("identity")

	var acct models.Account
	if err := config.DB.Where("identity = ?", identity).First(&acct).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, acct)
}

// TopUp adds funds to an account balance
func TopUp(c *gin.Context) {
	identity := c.Param("identity")

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var acct models.Account
	if err := config.DB.Where("identity = ?", identity).First(&acct).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	acct.Balance += req.Amount
	if err := tx.Save(&acct).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
		return
	}

	record := models.Transaction{
		Identity:     identity,
		Type:         models.TopUpTransaction,
		Amount:       req.Amount,
		BalanceAfter: acct.Balance,
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusCreated, record)
}

// CashOut pays funds out of an account balance
func CashOut(c *gin.Context) {
	identity := c.Param("identity")

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var acct models.Account
	if err := config.DB.Where("identity = ?", identity).First(&acct).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if acct.Balance < req.Amount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	acct.Balance -= req.Amount
	if err := tx.Save(&acct).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
		return
	}

	record := models.Transaction{
		Identity:     identity,
		Type:         models.CashOutTransaction,
		Amount:       req.Amount,
		BalanceAfter: acct.Balance,
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusCreated, record)
}

// ListTransactions returns an account's balance movements, newest first
func ListTransactions(c *gin.Context) {
	identity := c.Param("identity")

	var records []models.Transaction
	if err := config.DB.Where("identity = ?", identity).Order("id DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, records)
}

package routes

import (
	"github.com/stakeroom/lobby-backend/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Account routes
	// ----------------------
	api.POST("/accounts", controllers.RegisterAccount)
	api.GET("/accounts/:identity", controllers.GetAccount)
	api.POST("/accounts/:identity/topup", controllers.TopUp)
	api.POST("/accounts/:identity/cashout", controllers.CashOut)
	api.GET("/accounts/:identity/transactions", controllers.ListTransactions)

	// ----------------------
	// Lobby routes
	// ----------------------
	api.POST("/lobbies", controllers.CreateLobby)
	api.GET("/lobbies/:id", controllers.LobbyStatus)
	api.POST("/lobbies/:id/enroll", controllers.Enroll)
	api.POST("/lobbies/:id/deposit", controllers.Deposit)
	api.POST("/lobbies/:id/cancel", controllers.CancelLobby)
	api.POST("/lobbies/:id/withdraw", controllers.Withdraw)
	api.POST("/lobbies/:id/start", controllers.StartGame)
	api.GET("/lobbies/:id/deposits/:identity", controllers.DepositOf)
}

package main

import (
	"log"

	"github.com/stakeroom/lobby-backend/config"
)

func main() {
	config.Load()
	db := config.SetupDatabase() // connects + migrates
	_ = db
	log.Println("✅ Database migration completed successfully")
}

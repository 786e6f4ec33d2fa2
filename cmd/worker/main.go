package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/naveenreddy007/raju-course--sub000/internal/consumers"
	"github.com/naveenreddy007/raju-course--sub000/internal/database"
	"github.com/naveenreddy007/raju-course--sub000/internal/services"
	"github.com/naveenreddy007/raju-course--sub000/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Init Services
	affiliateService := services.NewAffiliateService(db)
	payoutService := services.NewPayoutService(db, nil)

	// Processor
	processor := consumers.NewPayoutProcessor(db, payoutService, affiliateService)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	log.Println("Starting Asynq Worker...")
	if err := worker.StartWorker(redisAddr, processor); err != nil {
		log.Fatal("Worker stopped: ", err)
	}
}

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/naveenreddy007/raju-course--sub000/internal/database"
	"github.com/naveenreddy007/raju-course--sub000/internal/handlers"
	"github.com/naveenreddy007/raju-course--sub000/internal/middleware"
	"github.com/naveenreddy007/raju-course--sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	referralService := services.NewReferralService(db)
	commissionService := services.NewCommissionService(db)
	affiliateService := services.NewAffiliateService(db)
	payoutService := services.NewPayoutService(db, asynqClient)
	purchaseService := services.NewPurchaseService(db, referralService, commissionService, affiliateService, asynqClient)

	// Handlers
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	payoutHandler := handlers.NewPayoutHandler(payoutService, commissionService, affiliateService, referralService)
	adminHandler := handlers.NewAdminHandler(payoutService, commissionService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the affiliate commission service",
		})
	})

	// Affiliate-facing routes
	user := r.Group("/", middleware.RequireAuth())
	{
		user.GET("/balance", payoutHandler.GetBalance)
		user.GET("/commissions", payoutHandler.ListCommissions)
		user.GET("/affiliate", payoutHandler.GetAffiliateProfile)
		user.GET("/referrals/stats", payoutHandler.GetReferralStats)
		user.POST("/payouts", payoutHandler.RequestPayout)
		user.GET("/payouts", payoutHandler.ListPayouts)
		user.DELETE("/payouts/:id", payoutHandler.CancelPayout)
	}

	// Back-office routes
	admin := r.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/purchases/confirm", purchaseHandler.ConfirmPurchase)
		admin.POST("/commissions/settle", adminHandler.SettleCommissions)
		admin.GET("/payouts/pending", adminHandler.ListPendingPayouts)
		admin.POST("/payouts/:id/approve", adminHandler.ApprovePayout)
		admin.POST("/payouts/:id/reject", adminHandler.RejectPayout)
	}

	// Start Cron Schedulers
	commissionService.StartScheduler(commissionMaturity())
	affiliateService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// commissionMaturity reads the settlement window, defaulting to 7 days.
func commissionMaturity() time.Duration {
	days := 7
	if v := os.Getenv("COMMISSION_MATURITY_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			log.Printf("Invalid COMMISSION_MATURITY_DAYS %q, using default %d", v, days)
		} else {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

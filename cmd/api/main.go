package main

import (
	"log"
	"log/slog"
	"os"

	"councildigest/db"
	"councildigest/internal/extract"
	"councildigest/internal/handler"
	"councildigest/internal/repository"
	"councildigest/pkg/llm"
	"councildigest/pkg/scrape"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func liveExtractionAllowed() bool {
	switch os.Getenv("ALLOW_LIVE_EXTRACTION") {
	case "1", "true", "yes":
		return true
	}
	return false
}

// redisQueue adapts the shared Redis helpers to the handler's queue interface.
type redisQueue struct{}

func (redisQueue) Push(meetingCode string) error {
	return db.PushToQueue(db.PrewarmQueueKey, meetingCode)
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	client, err := llm.FromEnv()
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	extractor := extract.New(client)
	scraper := scrape.NewClient(envOrDefault("SCRAPER_DIR", "scraper"))

	meetingRepo := repository.NewMeetingRepository(
		envOrDefault("DATA_DIR", "data"),
		extractor,
		scraper,
		liveExtractionAllowed(),
	)
	reportRepo := repository.NewReportRepository(envOrDefault("DATA_DIR", "data"))

	var queue handler.PrewarmQueue
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		queue = redisQueue{}
	}

	meetingHandler := handler.NewMeetingHandler(meetingRepo, queue)
	reportHandler := handler.NewReportHandler(reportRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/health", meetingHandler.GetHealth)
	r.GET("/api/meetings", meetingHandler.ListMeetings)
	r.GET("/api/meetings/:code", meetingHandler.GetMeeting)
	r.GET("/api/stats", meetingHandler.GetStats)
	r.GET("/api/debug/meeting-codes", meetingHandler.DebugCodes)
	r.GET("/api/reports/summary", reportHandler.ReportsSummary)
	r.POST("/api/refresh", meetingHandler.Refresh)
	r.POST("/api/prewarm", meetingHandler.Prewarm)
	r.POST("/api/reports", reportHandler.SubmitReport)

	err = r.Run(":" + envOrDefault("PORT", "8080"))
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

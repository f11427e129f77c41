package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"councildigest/internal/extract"
	"councildigest/internal/repository"
	"councildigest/pkg/llm"
	"councildigest/pkg/scrape"

	"github.com/joho/godotenv"
)

const scrapeTimeout = 3 * time.Minute

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
	meetingRepo := repository.NewMeetingRepository(envOrDefault("DATA_DIR", "data"), extractor, scraper, true)

	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	count, err := meetingRepo.Refresh(ctx)
	if err != nil {
		log.Fatalf("error refreshing meetings from council: %v", err)
	}
	slog.Info("meeting index refreshed", "meetings", count)

	prewarmed, err := meetingRepo.Prewarm()
	if err != nil {
		log.Fatalf("error building meeting details: %v", err)
	}
	slog.Info("refresh complete", "meetings", count, "details_built", prewarmed)
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"councildigest/db"
	"councildigest/internal/extract"
	"councildigest/internal/repository"
	"councildigest/pkg/llm"
	"councildigest/pkg/scrape"

	"github.com/joho/godotenv"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	client, err := llm.FromEnv()
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	extractor := extract.New(client)
	scraper := scrape.NewClient(envOrDefault("SCRAPER_DIR", "scraper"))
	meetingRepo := repository.NewMeetingRepository(envOrDefault("DATA_DIR", "data"), extractor, scraper, false)

	ctx := context.Background()
	failures := map[string]int{}

	for {
		meetingCode, err := db.PopFromQueue(db.PrewarmQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		if failures[meetingCode] >= maxRetries {
			slog.Warn("meeting exceeded max retries, moving to dead letter queue", "meeting_code", meetingCode)
			db.PushToQueue(db.DeadLetterKey, meetingCode)
			continue
		}

		if detail := meetingRepo.LoadDetail(meetingCode); detail != nil {
			slog.Info("meeting already cached, skipping", "meeting_code", meetingCode)
			continue
		}

		detail, err := meetingRepo.GetMeeting(ctx, meetingCode)
		if err != nil {
			slog.Error("error building meeting detail", "error", err, "meeting_code", meetingCode)

			failures[meetingCode]++
			db.PushToQueue(db.PrewarmQueueKey, meetingCode)

			time.Sleep(5 * time.Second)
			continue
		}

		if detail == nil {
			slog.Warn("meeting not found in scraper output", "meeting_code", meetingCode)
			continue
		}

		slog.Info("meeting prewarmed successfully", "meeting_code", meetingCode, "motions", len(detail.Motions))
	}

}

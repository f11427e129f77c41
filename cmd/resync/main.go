package main

import (
	"log"
	"log/slog"
	"os"

	"councildigest/internal/repository"

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

	meetingRepo := repository.NewMeetingRepository(envOrDefault("DATA_DIR", "data"), nil, nil, false)

	count, err := meetingRepo.Resync()
	if err != nil {
		log.Fatalf("error resyncing meetings index: %v", err)
	}
	slog.Info("meetings index rebuilt from cached details", "meetings", count)

	drifts := meetingRepo.Compare()
	for _, d := range drifts {
		slog.Warn("index out of sync with cached detail",
			"meeting_code", d.MeetingCode,
			"index_count", d.IndexCount,
			"detail_count", d.DetailCount,
			"in_index", d.InIndex)
	}

	if len(drifts) == 0 {
		slog.Info("index and cached details are in sync")
	} else {
		slog.Warn("resync finished with drift remaining", "drifted", len(drifts))
	}
}

package extract

import (
	"os"

	"councildigest/internal/model"
	"councildigest/pkg/scrape"
)

// readOptionalFile returns the file contents or empty text when the path is
// unset or the file is missing. A meeting without a decisions or minutes
// document is normal scraper output, not an error.
func readOptionalFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// BuildDetail reads the scraped decisions/minutes files, extracts the full
// motion list and assembles the meeting detail record. The returned stats
// carry the topics and motion count the caller must merge into the overview
// index to keep it consistent with the new detail.
func (e *Extractor) BuildDetail(meetingCode string, overview model.MeetingOverview, raw scrape.Meeting) (model.MeetingDetail, DetailStats) {
	decisionsText := readOptionalFile(raw.DecisionsFile)
	minutesText := readOptionalFile(raw.MinutesFile)

	motions := e.MotionsForMeeting(decisionsText, minutesText)

	sourceURL := raw.MinutesURL
	if sourceURL == "" {
		sourceURL = raw.MeetingURL
	}

	detail := model.MeetingDetail{
		MeetingCode: meetingCode,
		Title:       overview.Title,
		Date:        overview.Date,
		SourceURL:   sourceURL,
		Motions:     motions,
	}

	return detail, DetailStats{
		Topics:      Topics(motions),
		MotionCount: len(motions),
	}
}

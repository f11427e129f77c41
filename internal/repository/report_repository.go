package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"councildigest/internal/model"
)

// ReportRepository stores content reports as a single append-oriented JSON
// array. Each append rewrites the whole file, matching the replace-on-write
// model of the meeting cache.
type ReportRepository struct {
	dataDir string
}

func NewReportRepository(dataDir string) *ReportRepository {
	return &ReportRepository{dataDir: dataDir}
}

func (r *ReportRepository) path() string {
	return filepath.Join(r.dataDir, "reports.json")
}

// load tolerates a missing or corrupt file by starting fresh; reports are
// best-effort operator signals, not critical data.
func (r *ReportRepository) load() []model.ContentReport {
	data, err := os.ReadFile(r.path())
	if err != nil {
		return nil
	}
	var reports []model.ContentReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil
	}
	return reports
}

func (r *ReportRepository) Append(report model.ContentReport) error {
	report.Timestamp = time.Now().UTC().Format(time.RFC3339)
	reports := append(r.load(), report)
	return writeJSON(r.path(), reports)
}

// SummarizeByMotion counts incorrect-information reports per motion,
// optionally filtered to one meeting.
func (r *ReportRepository) SummarizeByMotion(meetingCode string) []model.MotionReportCount {
	type key struct {
		code string
		id   int
	}
	counts := map[key]int{}
	for _, report := range r.load() {
		if report.Reason != model.ReportReasonIncorrect {
			continue
		}
		if report.MeetingCode == "" {
			continue
		}
		if meetingCode != "" && report.MeetingCode != meetingCode {
			continue
		}
		counts[key{report.MeetingCode, report.MotionID}]++
	}

	summary := make([]model.MotionReportCount, 0, len(counts))
	for k, count := range counts {
		summary = append(summary, model.MotionReportCount{
			MeetingCode:      k.code,
			MotionID:         k.id,
			IncorrectReports: count,
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].MeetingCode != summary[j].MeetingCode {
			return summary[i].MeetingCode < summary[j].MeetingCode
		}
		return summary[i].MotionID < summary[j].MotionID
	})
	return summary
}

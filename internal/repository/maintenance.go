package repository

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"councildigest/internal/extract"
	"councildigest/internal/identity"
	"councildigest/internal/model"
)

// Prewarm builds and persists detail for every scraped meeting that does not
// have one yet, patching the index as each completes. Per-meeting failures
// are logged and skipped so one bad meeting never aborts the pass.
func (r *MeetingRepository) Prewarm() (int, error) {
	scraped := r.loadScrapedIndex()
	if scraped == nil {
		scraped = r.scraper.LoadFromDisk()
	}
	if scraped == nil {
		return 0, ErrScrapeUnavailable
	}

	overviews := r.LoadOverviewIndex()
	if overviews == nil {
		overviews = identity.Overviews(scraped)
	}

	prewarmed := 0
	for i, raw := range scraped {
		meetingCode := identity.MeetingCode(raw.MeetingText, i+1)
		if r.LoadDetail(meetingCode) != nil {
			continue
		}

		overview, ok := findOverview(meetingCode, overviews)
		if !ok {
			overview = model.MeetingOverview{
				MeetingCode: meetingCode,
				Title:       raw.MeetingText,
				Date:        model.UnknownDate,
				Topics:      []string{},
			}
		}

		detail, stats := r.builder.BuildDetail(meetingCode, overview, raw)
		if err := r.SaveDetail(detail); err != nil {
			slog.Warn("prewarm failed to save detail", "meeting_code", meetingCode, "error", err)
			continue
		}
		if err := r.patchOverview(overview, stats); err != nil {
			slog.Warn("prewarm failed to patch index", "meeting_code", meetingCode, "error", err)
		}
		prewarmed++
	}
	return prewarmed, nil
}

// UncachedCodes lists meeting codes from the scraped list that have no
// cached detail yet, in list order.
func (r *MeetingRepository) UncachedCodes() ([]string, error) {
	scraped := r.loadScrapedIndex()
	if scraped == nil {
		scraped = r.scraper.LoadFromDisk()
	}
	if scraped == nil {
		return nil, ErrScrapeUnavailable
	}

	var codes []string
	for i, raw := range scraped {
		code := identity.MeetingCode(raw.MeetingText, i+1)
		if r.LoadDetail(code) == nil {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// loadAllDetails reads every detail file in the cache, skipping unreadable
// ones, sorted by file name for stable output.
func (r *MeetingRepository) loadAllDetails() []model.MeetingDetail {
	entries, err := os.ReadDir(r.detailDir())
	if err != nil {
		return nil
	}

	var details []model.MeetingDetail
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.detailDir(), name))
		if err != nil {
			slog.Warn("skipping unreadable detail file", "file", name, "error", err)
			continue
		}
		var detail model.MeetingDetail
		if err := json.Unmarshal(data, &detail); err != nil {
			slog.Warn("skipping unparseable detail file", "file", name, "error", err)
			continue
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].MeetingCode < details[j].MeetingCode })
	return details
}

// Resync recomputes motion_count and topics for every overview purely from
// cached detail files and replaces the stored index. No extraction happens.
func (r *MeetingRepository) Resync() (int, error) {
	details := r.loadAllDetails()
	if len(details) == 0 {
		return 0, nil
	}

	overviews := r.LoadOverviewIndex()
	byCode := map[string]model.MeetingOverview{}
	var order []string
	for _, o := range overviews {
		byCode[o.MeetingCode] = o
		order = append(order, o.MeetingCode)
	}

	updated := 0
	for _, detail := range details {
		overview, ok := byCode[detail.MeetingCode]
		if !ok {
			overview = model.MeetingOverview{
				MeetingCode: detail.MeetingCode,
				Title:       detail.Title,
				Date:        detail.Date,
			}
			order = append(order, detail.MeetingCode)
		}
		overview.MotionCount = len(detail.Motions)
		overview.Topics = extract.Topics(detail.Motions)
		byCode[detail.MeetingCode] = overview
		updated++
	}

	merged := make([]model.MeetingOverview, 0, len(order))
	for _, code := range order {
		merged = append(merged, byCode[code])
	}
	if err := r.SaveOverviewIndex(merged); err != nil {
		return 0, err
	}
	return updated, nil
}

// Drift is one meeting whose index motion count disagrees with the live
// count in its detail file.
type Drift struct {
	MeetingCode string `json:"meeting_code"`
	IndexCount  int    `json:"index_count"`
	DetailCount int    `json:"detail_count"`
	InIndex     bool   `json:"in_index"`
}

// Compare is the read-only diagnostic for index/detail drift.
func (r *MeetingRepository) Compare() []Drift {
	overviews := r.LoadOverviewIndex()

	var drifts []Drift
	for _, detail := range r.loadAllDetails() {
		detailCount := len(detail.Motions)
		overview, ok := findOverview(detail.MeetingCode, overviews)
		if !ok {
			drifts = append(drifts, Drift{
				MeetingCode: detail.MeetingCode,
				IndexCount:  0,
				DetailCount: detailCount,
				InIndex:     false,
			})
			continue
		}
		if overview.MotionCount != detailCount {
			drifts = append(drifts, Drift{
				MeetingCode: detail.MeetingCode,
				IndexCount:  overview.MotionCount,
				DetailCount: detailCount,
				InIndex:     true,
			})
		}
	}
	return drifts
}

// Stats aggregates decision counts across every cached detail, joining
// region and date from the overview index where available.
func (r *MeetingRepository) Stats() model.Stats {
	overviews := r.LoadOverviewIndex()

	byCategory := map[string]int{}
	byRegion := map[string]int{}
	byStatus := map[string]int{}
	type meetingAgg struct {
		date  string
		total int
	}
	byMeeting := map[string]meetingAgg{}

	for _, detail := range r.loadAllDetails() {
		if len(detail.Motions) == 0 {
			continue
		}

		region := "Unknown"
		date := model.UnknownDate
		if overview, ok := findOverview(detail.MeetingCode, overviews); ok {
			if overview.Region != "" {
				region = overview.Region
			}
			if overview.Date != "" {
				date = overview.Date
			}
		}

		agg := byMeeting[detail.MeetingCode]
		agg.date = date
		agg.total += len(detail.Motions)
		byMeeting[detail.MeetingCode] = agg

		for _, motion := range detail.Motions {
			category := motion.Category
			if category == "" {
				category = model.OtherCategory
			}
			status := motion.Status
			if status == "" {
				status = "OTHER"
			}
			byCategory[category]++
			byRegion[region]++
			byStatus[status]++
		}
	}

	stats := model.Stats{
		ByCategory: []model.CategoryStat{},
		ByRegion:   []model.RegionStat{},
		ByStatus:   []model.StatusStat{},
		ByMeeting:  []model.MeetingStat{},
	}
	for k, v := range byCategory {
		stats.ByCategory = append(stats.ByCategory, model.CategoryStat{Category: k, Decisions: v})
	}
	for k, v := range byRegion {
		stats.ByRegion = append(stats.ByRegion, model.RegionStat{Region: k, Decisions: v})
	}
	for k, v := range byStatus {
		stats.ByStatus = append(stats.ByStatus, model.StatusStat{Status: k, Decisions: v})
	}
	for code, agg := range byMeeting {
		stats.ByMeeting = append(stats.ByMeeting, model.MeetingStat{
			MeetingCode:    code,
			Date:           agg.date,
			TotalDecisions: agg.total,
		})
	}

	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Decisions != stats.ByCategory[j].Decisions {
			return stats.ByCategory[i].Decisions > stats.ByCategory[j].Decisions
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	sort.Slice(stats.ByRegion, func(i, j int) bool {
		if stats.ByRegion[i].Decisions != stats.ByRegion[j].Decisions {
			return stats.ByRegion[i].Decisions > stats.ByRegion[j].Decisions
		}
		return stats.ByRegion[i].Region < stats.ByRegion[j].Region
	})
	sort.Slice(stats.ByStatus, func(i, j int) bool {
		if stats.ByStatus[i].Decisions != stats.ByStatus[j].Decisions {
			return stats.ByStatus[i].Decisions > stats.ByStatus[j].Decisions
		}
		return stats.ByStatus[i].Status < stats.ByStatus[j].Status
	})
	sort.Slice(stats.ByMeeting, func(i, j int) bool {
		return stats.ByMeeting[i].Date < stats.ByMeeting[j].Date
	})

	return stats
}

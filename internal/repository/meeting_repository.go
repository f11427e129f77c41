package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"councildigest/internal/extract"
	"councildigest/internal/identity"
	"councildigest/internal/model"
	"councildigest/pkg/scrape"
)

// ErrScrapeUnavailable means no scraper output exists anywhere and live
// extraction is disabled, so there is nothing to build from.
var ErrScrapeUnavailable = errors.New("no scraper output found and live extraction is disabled")

// ErrLiveDisabled guards operations that always need a live scraper run.
var ErrLiveDisabled = errors.New("live extraction is disabled")

// DetailBuilder assembles a meeting detail from scraped files. Satisfied by
// *extract.Extractor; tests substitute a fake.
type DetailBuilder interface {
	BuildDetail(meetingCode string, overview model.MeetingOverview, raw scrape.Meeting) (model.MeetingDetail, extract.DetailStats)
}

// ScrapeSource is the scraping collaborator. Satisfied by *scrape.Client.
type ScrapeSource interface {
	LoadFromDisk() []scrape.Meeting
	Run(ctx context.Context) ([]scrape.Meeting, error)
}

// MeetingRepository is the two-tier on-disk cache: one overview index
// document plus one detail document per meeting. Writes replace whole files
// via rename, so readers see either the old or the new complete version.
type MeetingRepository struct {
	dataDir   string
	builder   DetailBuilder
	scraper   ScrapeSource
	allowLive bool
}

func NewMeetingRepository(dataDir string, builder DetailBuilder, scraper ScrapeSource, allowLive bool) *MeetingRepository {
	return &MeetingRepository{
		dataDir:   dataDir,
		builder:   builder,
		scraper:   scraper,
		allowLive: allowLive,
	}
}

func (r *MeetingRepository) cacheDir() string    { return filepath.Join(r.dataDir, "cache") }
func (r *MeetingRepository) indexPath() string   { return filepath.Join(r.cacheDir(), "meetings_index.json") }
func (r *MeetingRepository) scrapedPath() string { return filepath.Join(r.cacheDir(), "scraped_meetings.json") }
func (r *MeetingRepository) detailDir() string   { return filepath.Join(r.cacheDir(), "meetings") }

func (r *MeetingRepository) detailPath(meetingCode string) string {
	return filepath.Join(r.detailDir(), meetingCode+".json")
}

// writeJSON replaces the target file in one step: marshal, write a sibling
// temp file, rename over the destination.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

type indexDocument struct {
	GeneratedAt string                  `json:"generated_at"`
	Meetings    []model.MeetingOverview `json:"meetings"`
}

// LoadOverviewIndex returns the persisted overview list, or nil when the
// index is missing or unreadable. A corrupt index is a cache miss, never an
// error.
func (r *MeetingRepository) LoadOverviewIndex() []model.MeetingOverview {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		return nil
	}
	var doc indexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc.Meetings
}

// SaveOverviewIndex replaces the whole index with a fresh generation stamp.
func (r *MeetingRepository) SaveOverviewIndex(overviews []model.MeetingOverview) error {
	return writeJSON(r.indexPath(), indexDocument{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Meetings:    overviews,
	})
}

// LoadDetail returns the cached detail for a meeting, or nil on miss. As
// with the index, an unreadable file is a miss.
func (r *MeetingRepository) LoadDetail(meetingCode string) *model.MeetingDetail {
	data, err := os.ReadFile(r.detailPath(meetingCode))
	if err != nil {
		return nil
	}
	var detail model.MeetingDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil
	}
	return &detail
}

func (r *MeetingRepository) SaveDetail(detail model.MeetingDetail) error {
	return writeJSON(r.detailPath(detail.MeetingCode), detail)
}

type scrapedDocument struct {
	Meetings []scrape.Meeting `json:"meetings"`
}

// saveScrapedIndex persists the scraped meeting list so detail requests can
// resolve raw entries without re-running the scraper.
func (r *MeetingRepository) saveScrapedIndex(scraped []scrape.Meeting) error {
	return writeJSON(r.scrapedPath(), scrapedDocument{Meetings: scraped})
}

func (r *MeetingRepository) loadScrapedIndex() []scrape.Meeting {
	data, err := os.ReadFile(r.scrapedPath())
	if err != nil {
		return nil
	}
	var doc scrapedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc.Meetings
}

// withDetailCached recomputes detail_cached for every overview at read time.
func (r *MeetingRepository) withDetailCached(overviews []model.MeetingOverview) []model.MeetingOverview {
	out := make([]model.MeetingOverview, len(overviews))
	for i, o := range overviews {
		_, err := os.Stat(r.detailPath(o.MeetingCode))
		o.DetailCached = err == nil
		out[i] = o
	}
	return out
}

func reversed(overviews []model.MeetingOverview) []model.MeetingOverview {
	out := make([]model.MeetingOverview, len(overviews))
	for i, o := range overviews {
		out[len(overviews)-1-i] = o
	}
	return out
}

// ListMeetings returns overviews newest-first. Source order: overview index,
// then existing scraper output on disk, then a live scraper run when
// allowed, else an empty list. Only a failed live run is an error.
func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]model.MeetingOverview, error) {
	if cached := r.LoadOverviewIndex(); cached != nil {
		return reversed(r.withDetailCached(cached)), nil
	}

	scraped := r.scraper.LoadFromDisk()
	if scraped == nil && r.allowLive {
		var err error
		scraped, err = r.scraper.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("live scrape failed: %w", err)
		}
	}
	if scraped == nil {
		slog.Warn("no overview index and no scraper output on disk, returning empty meeting list",
			"allow_live_extraction", r.allowLive)
		return []model.MeetingOverview{}, nil
	}

	overviews := identity.Overviews(scraped)
	if err := r.SaveOverviewIndex(overviews); err != nil {
		return nil, err
	}
	if err := r.saveScrapedIndex(scraped); err != nil {
		return nil, err
	}
	return reversed(r.withDetailCached(overviews)), nil
}

// resolveScraped finds the raw entry whose derived code matches, re-deriving
// codes over the list in order so fallback codes line up with the index.
func resolveScraped(meetingCode string, scraped []scrape.Meeting) (scrape.Meeting, bool) {
	for i, m := range scraped {
		if identity.MeetingCode(m.MeetingText, i+1) == meetingCode {
			return m, true
		}
	}
	return scrape.Meeting{}, false
}

func findOverview(meetingCode string, overviews []model.MeetingOverview) (model.MeetingOverview, bool) {
	for _, o := range overviews {
		if o.MeetingCode == meetingCode {
			return o, true
		}
	}
	return model.MeetingOverview{}, false
}

// GetMeeting returns the cached detail or builds it on first request:
// resolve the raw scraped entry, run extraction, persist the detail and
// patch the overview index so its stats match. A missing raw entry is a
// not-found (nil, nil), not an error.
func (r *MeetingRepository) GetMeeting(ctx context.Context, meetingCode string) (*model.MeetingDetail, error) {
	if cached := r.LoadDetail(meetingCode); cached != nil {
		return cached, nil
	}

	scraped := r.loadScrapedIndex()
	if scraped == nil {
		scraped = r.scraper.LoadFromDisk()
	}
	if scraped == nil {
		if !r.allowLive {
			return nil, ErrScrapeUnavailable
		}
		var err error
		scraped, err = r.scraper.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("live scrape failed: %w", err)
		}
		if err := r.saveScrapedIndex(scraped); err != nil {
			return nil, err
		}
	}

	raw, ok := resolveScraped(meetingCode, scraped)
	if !ok {
		return nil, nil
	}

	overviews := r.LoadOverviewIndex()
	if overviews == nil {
		overviews = identity.Overviews(scraped)
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
		return nil, err
	}
	if err := r.patchOverview(overview, stats); err != nil {
		// Detail is saved; a stale index is recoverable via resync.
		slog.Warn("failed to patch overview index after detail build",
			"meeting_code", meetingCode, "error", err)
	}

	return &detail, nil
}

// patchOverview merges freshly built stats into the stored index entry for
// the meeting, inserting the overview when absent.
func (r *MeetingRepository) patchOverview(overview model.MeetingOverview, stats extract.DetailStats) error {
	overview.Topics = stats.Topics
	overview.MotionCount = stats.MotionCount
	overview.DetailCached = false // derived field, not persisted as truth

	existing := r.LoadOverviewIndex()
	updated := make([]model.MeetingOverview, 0, len(existing)+1)
	seen := false
	for _, o := range existing {
		if o.MeetingCode == overview.MeetingCode {
			updated = append(updated, overview)
			seen = true
		} else {
			updated = append(updated, o)
		}
	}
	if !seen {
		updated = append(updated, overview)
	}
	return r.SaveOverviewIndex(updated)
}

// Refresh re-runs the scraper and rebuilds both indexes. Requires live
// extraction; existing detail files are left alone.
func (r *MeetingRepository) Refresh(ctx context.Context) (int, error) {
	if !r.allowLive {
		return 0, ErrLiveDisabled
	}
	scraped, err := r.scraper.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("live scrape failed: %w", err)
	}
	overviews := identity.Overviews(scraped)
	if err := r.SaveOverviewIndex(overviews); err != nil {
		return 0, err
	}
	if err := r.saveScrapedIndex(scraped); err != nil {
		return 0, err
	}
	return len(overviews), nil
}

// DebugCodes reports where the meeting list would come from and the codes it
// would contain.
func (r *MeetingRepository) DebugCodes() (source string, codes []string) {
	if cached := r.LoadOverviewIndex(); cached != nil {
		for _, o := range cached {
			codes = append(codes, o.MeetingCode)
		}
		return "cache", codes
	}
	if scraped := r.scraper.LoadFromDisk(); scraped != nil {
		for i, m := range scraped {
			codes = append(codes, identity.MeetingCode(m.MeetingText, i+1))
		}
		return "disk", codes
	}
	return "none", []string{}
}

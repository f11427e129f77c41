package model

import "strings"

const (
	StatusPassed   = "PASSED"
	StatusFailed   = "FAILED"
	StatusDeferred = "DEFERRED"
	StatusAmended  = "AMENDED"
	StatusReceived = "RECEIVED"

	OtherCategory = "other"

	UnknownDate = "Unknown date"
)

var validStatuses = map[string]bool{
	StatusPassed:   true,
	StatusFailed:   true,
	StatusDeferred: true,
	StatusAmended:  true,
	StatusReceived: true,
}

var validCategories = map[string]bool{
	"housing":        true,
	"transportation": true,
	"budget":         true,
	"environment":    true,
	"services":       true,
	"governance":     true,
	OtherCategory:    true,
}

// NormalizeStatus upper-cases a model-supplied status and falls back to
// PASSED when the value is blank or outside the known set.
func NormalizeStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || !validStatuses[s] {
		return StatusPassed
	}
	return s
}

// NormalizeCategory lower-cases a model-supplied category and falls back to
// "other" when the value is blank or outside the known set.
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || !validCategories[s] {
		return OtherCategory
	}
	return s
}

type Motion struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Status     string   `json:"status"`
	Category   string   `json:"category"`
	ImpactTags []string `json:"impact_tags"`
	FullText   string   `json:"full_text,omitempty"`
}

type MeetingOverview struct {
	MeetingCode string   `json:"meeting_code"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Topics      []string `json:"topics"`
	MotionCount int      `json:"motion_count"`
	Region      string   `json:"region,omitempty"`

	// DetailCached is derived at read time, never persisted.
	DetailCached bool `json:"detail_cached"`
}

type MeetingDetail struct {
	MeetingCode string   `json:"meeting_code"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	SourceURL   string   `json:"source_url,omitempty"`
	Motions     []Motion `json:"motions"`
}

// Package identity derives stable meeting identifiers and best-effort
// date/region metadata from raw scraped meeting text. All rules are pure,
// ordered pattern matches with explicit fallbacks; the model is never
// involved.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"councildigest/internal/model"
	"councildigest/pkg/scrape"
)

// Authoritative municipal code, e.g. "2026.CC04".
var meetingCodeRe = regexp.MustCompile(`\b(20[2-4]\d\.CC\d+)\b`)

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\b`)
	monthDateRe = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+20\d{2}\b`)
)

const maxSlugLen = 40

var nonSlugRe = regexp.MustCompile(`[^a-z0-9_-]`)

func slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "—", "-") // em dash
	s = strings.ReplaceAll(s, "–", "-") // en dash
	s = strings.ReplaceAll(s, " ", "_")
	return nonSlugRe.ReplaceAllString(s, "")
}

// MeetingCode returns the authoritative municipal code when the meeting text
// contains one, otherwise a slug of the text suffixed with the zero-padded
// position of the meeting in the scraped list. Fallback codes are stable only
// for a given input order.
func MeetingCode(meetingText string, fallbackIndex int) string {
	if m := meetingCodeRe.FindStringSubmatch(meetingText); m != nil {
		return m[1]
	}

	slug := slugify(meetingText)
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	if slug == "" {
		slug = "meeting"
	}
	return fmt.Sprintf("%s_%02d", slug, fallbackIndex)
}

// MeetingDate extracts a display date from the meeting text: a leading ISO
// date wins, then the first month-name date anywhere, then "Unknown date".
func MeetingDate(meetingText string) string {
	trimmed := strings.TrimSpace(meetingText)
	if m := isoDateRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	if m := monthDateRe.FindString(meetingText); m != "" {
		return m
	}
	return model.UnknownDate
}

// Region maps community-council names in the meeting title to a region label.
func Region(meetingText string) string {
	switch {
	case strings.Contains(meetingText, "North York Community Council"):
		return "North York"
	case strings.Contains(meetingText, "Etobicoke York Community Council"):
		return "Etobicoke York"
	case strings.Contains(meetingText, "Toronto and East York Community Council"):
		return "Toronto & East York"
	case strings.Contains(meetingText, "Scarborough Community Council"):
		return "Scarborough"
	}
	return "City-wide"
}

// Overview builds the overview skeleton for one scraped meeting heading.
// Topics and motion count stay empty until detail is built.
func Overview(meetingText string, fallbackIndex int) model.MeetingOverview {
	return model.MeetingOverview{
		MeetingCode: MeetingCode(meetingText, fallbackIndex),
		Title:       meetingText,
		Date:        MeetingDate(meetingText),
		Topics:      []string{},
		MotionCount: 0,
		Region:      Region(meetingText),
	}
}

// Overviews derives overview skeletons for a whole scraped list, assigning
// 1-based fallback indexes in list order.
func Overviews(scraped []scrape.Meeting) []model.MeetingOverview {
	overviews := make([]model.MeetingOverview, 0, len(scraped))
	for i, m := range scraped {
		overviews = append(overviews, Overview(m.MeetingText, i+1))
	}
	return overviews
}

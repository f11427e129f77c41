// Package extract turns segmented decision documents into Motion records by
// orchestrating one model call per item and defending against malformed
// model output. A failed or unparseable call degrades to "no motion for this
// item"; it never fails the meeting build.
package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"councildigest/internal/model"
	"councildigest/internal/segment"
	"councildigest/pkg/llm"
)

const summaryFallbackLen = 500

type Extractor struct {
	client llm.MotionClient
}

func New(client llm.MotionClient) *Extractor {
	return &Extractor{client: client}
}

// motionsForItem issues a single model call for one chunk and returns zero
// or one motion with a provisional id. Blank model fields fall back to the
// chunk's own text so a sloppy response still yields a usable record.
func (e *Extractor) motionsForItem(chunk segment.ItemChunk) []model.Motion {
	raw, err := e.client.ExtractMotions(llm.ItemInput{
		ItemID:  chunk.ItemID,
		Heading: chunk.Heading,
		Body:    chunk.Body,
	})
	if err != nil {
		slog.Error("motion extraction failed", "item_id", chunk.ItemID, "error", err)
		return nil
	}

	motions := make([]model.Motion, 0, len(raw))
	for i, payload := range raw {
		title := strings.TrimSpace(payload.Title)
		if title == "" {
			title = chunk.Heading
		}

		summary := strings.TrimSpace(payload.Summary)
		if summary == "" {
			summary = chunk.Body
			if len(summary) > summaryFallbackLen {
				summary = summary[:summaryFallbackLen]
			}
		}

		fullText := payload.FullText
		if fullText == "" {
			fullText = chunk.Body
		}

		motions = append(motions, model.Motion{
			ID:         i + 1,
			Title:      title,
			Summary:    summary,
			Status:     model.NormalizeStatus(payload.Status),
			Category:   model.NormalizeCategory(payload.Category),
			ImpactTags: coerceTags(payload.ImpactTags),
			FullText:   fullText,
		})
	}

	slog.Info("item extraction complete", "item_id", chunk.ItemID, "motions", len(motions))
	return motions
}

// MotionsForMeeting segments the decisions document and extracts motions for
// every item in order. Minutes text substitutes only when the decisions text
// is blank. Returned motion ids are sequential 1-based appearance order;
// per-item provisional ids are overwritten.
func (e *Extractor) MotionsForMeeting(decisionsText, minutesText string) []model.Motion {
	if strings.TrimSpace(decisionsText) == "" && minutesText != "" {
		decisionsText = minutesText
	}

	motions := []model.Motion{}
	if strings.TrimSpace(decisionsText) == "" {
		return motions
	}

	for _, chunk := range segment.Split(decisionsText) {
		motions = append(motions, e.motionsForItem(chunk)...)
	}

	for i := range motions {
		motions[i].ID = i + 1
	}
	return motions
}

// coerceTags normalizes whatever the model put in impact_tags into a string
// slice: lists element-wise, anything else as a single tag.
func coerceTags(v any) []string {
	switch tags := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			out = append(out, fmt.Sprintf("%v", t))
		}
		return out
	case []string:
		return tags
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// DetailStats is what a detail build changes on the corresponding overview.
// The caller merges these into the index; the overview itself is not mutated
// here.
type DetailStats struct {
	Topics      []string
	MotionCount int
}

// Topics returns the sorted set of distinct non-empty motion categories.
func Topics(motions []model.Motion) []string {
	seen := map[string]bool{}
	topics := []string{}
	for _, m := range motions {
		if m.Category != "" && !seen[m.Category] {
			seen[m.Category] = true
			topics = append(topics, m.Category)
		}
	}
	sort.Strings(topics)
	return topics
}

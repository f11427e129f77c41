package segment

import (
	"regexp"
	"strings"
)

// ItemChunk is one candidate decision item inside a meeting document: the
// matched item code, the boundary line itself and the body text up to the
// next boundary. Chunks are in-memory only and keep document order.
type ItemChunk struct {
	ItemID  string
	Heading string
	Body    string
}

const (
	FallbackItemID  = "item_01"
	FallbackHeading = "Meeting Decisions"
)

// Boundary lines look like "RD1.2 - 2025 Performance Appraisal" or
// "TE29.3 - Zoning Amendment": an item code, a dash, then the item title.
var itemStartRe = regexp.MustCompile(`^([A-Z]{1,4}\d+\.\d+)\s*-\s*(.+)$`)

// Split segments a decisions document into item-sized chunks. It is a
// heuristic but deterministic splitter: each line matching the item-code
// pattern starts a new chunk, and every following line belongs to that
// chunk's body until the next boundary. Lines before the first boundary are
// dropped. If the document is non-empty but contains no boundaries at all,
// the whole text becomes a single fallback chunk so nothing is lost.
func Split(text string) []ItemChunk {
	var chunks []ItemChunk
	var currentID, currentHeading string
	var bodyLines []string

	flush := func() {
		if currentID == "" {
			return
		}
		chunks = append(chunks, ItemChunk{
			ItemID:  currentID,
			Heading: currentHeading,
			Body:    strings.TrimSpace(strings.Join(bodyLines, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := itemStartRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			currentID = m[1]
			currentHeading = trimmed
			bodyLines = nil
			continue
		}
		if currentID != "" {
			bodyLines = append(bodyLines, line)
		}
	}
	flush()

	if len(chunks) == 0 && strings.TrimSpace(text) != "" {
		chunks = append(chunks, ItemChunk{
			ItemID:  FallbackItemID,
			Heading: FallbackHeading,
			Body:    strings.TrimSpace(text),
		})
	}

	return chunks
}

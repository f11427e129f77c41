package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON.
	start := strings.IndexAny(content, "[{")
	if start >= 0 {
		closer := "]"
		if content[start] == '{' {
			closer = "}"
		}
		if end := strings.LastIndex(content, closer); end > start {
			content = content[start : end+1]
		}
	}
	return content
}

// parseMotionList decodes a model response into raw motion payloads. The
// contract is [] or [ { ... } ], but a bare object is accepted too. Elements
// are decoded one by one so a single malformed entry is skipped without
// discarding the rest of the list.
func parseMotionList(content, itemID string) ([]RawMotion, error) {
	content = cleanJSONResponse(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var elements []json.RawMessage
	if strings.HasPrefix(content, "{") {
		elements = []json.RawMessage{json.RawMessage(content)}
	} else if err := json.Unmarshal([]byte(content), &elements); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	motions := make([]RawMotion, 0, len(elements))
	for i, elem := range elements {
		var m RawMotion
		if err := json.Unmarshal(elem, &m); err != nil {
			slog.Warn("skipping malformed motion payload", "item_id", itemID, "index", i, "error", err)
			continue
		}
		motions = append(motions, m)
	}
	return motions, nil
}

package scrape

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// indexEntry is one record of the scraper's own output/index.json.
type indexEntry struct {
	MeetingText  string `json:"meetingText"`
	MeetingURL   string `json:"meetingUrl"`
	DecisionsURL string `json:"decisionsUrl"`
	MinutesURL   string `json:"minutesUrl"`
	Files        struct {
		Decisions string `json:"decisions"`
		Minutes   string `json:"minutes"`
	} `json:"files"`
}

// resolveFile turns a file name from index.json into an absolute path, or
// empty when the name is unset or the file is gone.
func resolveFile(outputDir, name string) string {
	if name == "" {
		return ""
	}
	path := filepath.Join(outputDir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func parseIndex(indexPath, outputDir string) ([]Meeting, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}

	var entries []indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	meetings := make([]Meeting, 0, len(entries))
	for _, e := range entries {
		meetings = append(meetings, Meeting{
			MeetingText:   e.MeetingText,
			MeetingURL:    e.MeetingURL,
			DecisionsURL:  e.DecisionsURL,
			MinutesURL:    e.MinutesURL,
			DecisionsFile: resolveFile(outputDir, e.Files.Decisions),
			MinutesFile:   resolveFile(outputDir, e.Files.Minutes),
		})
	}
	return meetings, nil
}

// LoadFromDisk reads existing scraper output without running the scraper.
// Missing or unparseable output is nil, so callers fall through to their
// next source.
func (c *Client) LoadFromDisk() []Meeting {
	outputDir := c.outputDir()
	meetings, err := parseIndex(filepath.Join(outputDir, "index.json"), outputDir)
	if err != nil {
		return nil
	}
	return meetings
}

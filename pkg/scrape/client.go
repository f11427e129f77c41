// Package scrape bridges to the Node Playwright scraper that downloads
// meeting documents from the council site. The scraper writes an
// output/index.json plus one text file per downloaded document; this package
// reads that layout and can invoke the scraper as a subprocess.
package scrape

import (
	"os"
	"path/filepath"
)

// Meeting is the raw scraper output for a single meeting. File fields hold
// absolute paths and are empty when the scraper produced no such document.
type Meeting struct {
	MeetingText   string `json:"meeting_text"`
	MeetingURL    string `json:"meeting_url"`
	DecisionsURL  string `json:"decisions_url,omitempty"`
	MinutesURL    string `json:"minutes_url,omitempty"`
	DecisionsFile string `json:"decisions_file,omitempty"`
	MinutesFile   string `json:"minutes_file,omitempty"`
}

type Client struct {
	dir  string
	node string
}

// NewClient points at the scraper directory. The node executable can be
// overridden with NODE_EXECUTABLE.
func NewClient(dir string) *Client {
	node := os.Getenv("NODE_EXECUTABLE")
	if node == "" {
		node = "node"
	}
	return &Client{dir: dir, node: node}
}

func (c *Client) outputDir() string {
	return filepath.Join(c.dir, "output")
}

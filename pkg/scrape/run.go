package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const scriptName = "scrape-content.js"

// Run invokes the Node scraper and returns the structured results it wrote.
// The caller bounds the run with its context; hitting the deadline, a
// non-zero exit, or missing output are all fatal for this refresh attempt.
func (c *Client) Run(ctx context.Context) ([]Meeting, error) {
	scriptPath := filepath.Join(c.dir, scriptName)
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, fmt.Errorf("scraper script not found at %s", scriptPath)
	}

	cmd := exec.CommandContext(ctx, c.node, scriptName)
	cmd.Dir = c.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("node scraper timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("node scraper failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	outputDir := c.outputDir()
	indexPath := filepath.Join(outputDir, "index.json")
	if _, err := os.Stat(indexPath); err != nil {
		return nil, fmt.Errorf("scraper did not produce index.json at %s", indexPath)
	}

	meetings, err := parseIndex(indexPath, outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraper index.json: %w", err)
	}
	return meetings, nil
}

package summarizer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

var reHeader = regexp.MustCompile(`^--- Page (\d+) ---\r?$`)

// FormatSummaries renders records in page order, each block introduced by its
// "--- Page N ---" delimiter line.
func FormatSummaries(records []models.SummaryRecord) string {
	sorted := append([]models.SummaryRecord(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].PageNumber < sorted[b].PageNumber
	})

	var sb strings.Builder
	for _, r := range sorted {
		sb.WriteString(r.Render())
	}
	return sb.String()
}

// WriteSummaryFile writes the formatted summaries to path, creating parents.
func WriteSummaryFile(path string, records []models.SummaryRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create summary dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(FormatSummaries(records)), 0644); err != nil {
		return fmt.Errorf("write summary file: %w", err)
	}
	return nil
}

// ParseSummaryFile reads a summary file back into page number -> text.
func ParseSummaryFile(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary file: %w", err)
	}
	summaries, err := ParseSummaries(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return summaries, nil
}

// ParseSummaries is the inverse of FormatSummaries. Text before the first
// delimiter is ignored; a repeated page number keeps the last block.
func ParseSummaries(content string) (map[int]string, error) {
	// Each block is written newline terminated; drop the final terminator so
	// the last block does not gain a trailing empty line.
	content = strings.TrimSuffix(content, "\n")

	summaries := make(map[int]string)
	current := -1
	var body []string

	flush := func() {
		if current >= 0 {
			summaries[current] = strings.Join(body, "\n")
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if m := reHeader.FindStringSubmatch(line); m != nil {
			flush()
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("parse page number %q: %w", m[1], err)
			}
			current = n
			body = body[:0]
			continue
		}
		if current >= 0 {
			body = append(body, strings.TrimSuffix(line, "\r"))
		}
	}
	flush()

	if len(summaries) == 0 {
		return nil, models.ErrEmptySummary
	}
	return summaries, nil
}

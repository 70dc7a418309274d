package video

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

var rePageImage = regexp.MustCompile(`^page_(\d+)\.png$`)

// DiscoverPages lists page_<N>.png files in imagesDir as page records in page
// order. OCR text is left empty.
func DiscoverPages(imagesDir string) ([]models.PageRecord, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var pages []models.PageRecord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := rePageImage.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		pages = append(pages, models.PageRecord{
			PageNumber: n,
			ImagePath:  filepath.Join(imagesDir, e.Name()),
		})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", models.ErrNoPages, imagesDir)
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})
	return pages, nil
}

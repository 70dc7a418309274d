package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/pagecast/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// WriteDocx exports page summaries to a styled docx file: a title, then one
// bold page heading followed by the page's paragraphs.
func WriteDocx(title string, records []models.SummaryRecord, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	sorted := append([]models.SummaryRecord(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].PageNumber < sorted[b].PageNumber
	})

	for _, r := range sorted {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Page %d", r.PageNumber), true, 14)

		for _, line := range strings.Split(r.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || trimmed == "---" {
				continue
			}

			if m := reHeading.FindStringSubmatch(trimmed); m != nil {
				addStyledRun(doc.AddParagraph(""), m[2], true, fontSize)
				continue
			}

			if m := reBullet.FindStringSubmatch(trimmed); m != nil {
				addRichText(doc.AddParagraph(""), "• "+m[1])
				continue
			}

			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

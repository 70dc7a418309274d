package models

import (
	"fmt"
	"time"
)

// Sentinel texts substituted for failed or skipped collaborator output.
const (
	SentinelTimeout    = "[Timeout]"
	SentinelError      = "[Error]"
	SentinelBlankImage = "[Skipped blank image]"
	SentinelOCRFailed  = "[OCR failed]"
)

// PageRecord is one rasterized page and its OCR text.
type PageRecord struct {
	PageNumber int
	ImagePath  string
	OCRText    string
}

// Status classifies how a SummaryRecord was produced.
type Status int

const (
	StatusOK Status = iota
	StatusTimeout
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// SummaryRecord is the summarization outcome for one page. Text holds the
// summary body (or a sentinel); Header renders the delimiter line.
type SummaryRecord struct {
	PageNumber int
	Text       string
	Status     Status
	Reason     string
}

// Header returns the page delimiter used in the summary file.
func (r SummaryRecord) Header() string {
	return PageHeader(r.PageNumber)
}

// Render returns the header and text as one block, newline terminated.
func (r SummaryRecord) Render() string {
	return r.Header() + "\n" + r.Text + "\n"
}

// PageHeader formats the "--- Page N ---" delimiter.
func PageHeader(n int) string {
	return fmt.Sprintf("--- Page %d ---", n)
}

// Segment is one page's encoded audio-visual clip prior to concatenation.
type Segment struct {
	PageNumber int
	VideoPath  string
	AudioPath  string
	Duration   time.Duration
}

// FinalVideo is the concatenated output.
type FinalVideo struct {
	Path     string
	Segments int
	Duration time.Duration
}

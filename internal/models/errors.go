package models

import "errors"

var (
	// ErrNoPages is returned when a document or image folder yields no pages.
	ErrNoPages = errors.New("no page images found")
	// ErrNoContent is returned when assembly is asked to join zero segments.
	ErrNoContent = errors.New("no content: zero segments to assemble")
	// ErrEmptySummary is returned when a summary file holds no page blocks.
	ErrEmptySummary = errors.New("summary file is empty")
	// ErrInvalidPDF is returned when the input fails PDF validation.
	ErrInvalidPDF = errors.New("invalid pdf")
)

package watcher

import "context"

// Watcher hands new PDFs in the input folder to an EventHandler
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

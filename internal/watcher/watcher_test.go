package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDFFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"in/report.pdf", true},
		{"in/REPORT.PDF", true},
		{"in/notes.txt", false},
		{"in/.report.pdf", false},
		{"in/report.pdf.part", false},
		{"in/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isPDFFile(tt.path))
		})
	}
}

func TestWatcherDispatchesPDFs(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := New(dir, func(ctx context.Context, path string) error {
		got <- path
		return nil
	}, logger.New("error", "text"), 1)
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.pdf"), []byte("%PDF"), 0644))

	select {
	case path := <-got:
		assert.Equal(t, filepath.Join(dir, "deck.pdf"), path)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Empty(t, got)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.New("error", "text"), 0)
	assert.Error(t, err)
}

func TestWatcherDrainsHandlersWhileWaitingForSlot(t *testing.T) {
	dir := t.TempDir()
	started := make(chan struct{}, 2)
	var finished atomic.Bool

	w, err := New(dir, func(ctx context.Context, path string) error {
		started <- struct{}{}
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	}, logger.New("error", "text"), 1)
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.pdf"), []byte("%PDF"), 0644))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	// The only slot is taken, so the second document blocks on the semaphore.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.pdf"), []byte("%PDF"), 0644))
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, finished.Load(), "Start returned before the running handler finished")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

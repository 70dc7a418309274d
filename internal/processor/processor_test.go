package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/config"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/models"
	"github.com/nguyentantai21042004/pagecast/internal/rag"
	"github.com/nguyentantai21042004/pagecast/internal/summarizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	pages int
	err   error
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, pdfPath, imagesDir string) ([]models.PageRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, err
	}
	var pages []models.PageRecord
	for i := 1; i <= f.pages; i++ {
		path := filepath.Join(imagesDir, fmt.Sprintf("page_%d.png", i))
		if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
			return nil, err
		}
		pages = append(pages, models.PageRecord{PageNumber: i, ImagePath: path})
	}
	return pages, nil
}

type fakeOCR struct{}

func (fakeOCR) ExtractAll(ctx context.Context, pages []models.PageRecord) ([]models.PageRecord, error) {
	out := append([]models.PageRecord(nil), pages...)
	for i := range out {
		out[i].OCRText = fmt.Sprintf("ocr %d", out[i].PageNumber)
	}
	return out, nil
}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, float32(i)}
	}
	return out, nil
}

type fakeSummarizer struct {
	index     rag.Index
	retrieval bool
	timeout   time.Duration
}

func (f *fakeSummarizer) WithIndex(index rag.Index) summarizer.Summarizer {
	f.index = index
	return f
}

func (f *fakeSummarizer) Summarize(ctx context.Context, page models.PageRecord, useRetrieval bool) models.SummaryRecord {
	return models.SummaryRecord{PageNumber: page.PageNumber, Text: "summary of " + page.OCRText}
}

func (f *fakeSummarizer) RunAll(ctx context.Context, pages []models.PageRecord, useRetrieval bool, timeout time.Duration) []models.SummaryRecord {
	f.retrieval = useRetrieval
	f.timeout = timeout
	var out []models.SummaryRecord
	for _, p := range pages {
		out = append(out, f.Summarize(ctx, p, useRetrieval))
	}
	return out
}

type fakeSpeech struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text, outPath string) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return os.WriteFile(outPath, []byte("mp3"), 0644)
}

// fakeExecutor plays ffmpeg by creating its output file and ffprobe by
// reporting one second.
type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	f.mu.Unlock()
	if name == "ffprobe" {
		return "1.0", nil
	}
	return "", os.WriteFile(args[len(args)-1], []byte("media"), 0644)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Work:     filepath.Join(root, "work"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

type harness struct {
	cfg        *config.Config
	embedder   *fakeEmbedder
	summarizer *fakeSummarizer
	speech     *fakeSpeech
	executor   *fakeExecutor
	proc       Processor
}

func newHarness(t *testing.T, pages int) *harness {
	h := &harness{
		cfg:        testConfig(t),
		embedder:   &fakeEmbedder{},
		summarizer: &fakeSummarizer{},
		speech:     &fakeSpeech{},
		executor:   &fakeExecutor{},
	}
	h.proc = New(h.cfg, Dependencies{
		Rasterizer: &fakeRasterizer{pages: pages},
		OCR:        fakeOCR{},
		Embedder:   h.embedder,
		Summarizer: h.summarizer,
		Speech:     h.speech,
		Executor:   h.executor,
	}, logger.New("error", "text"))
	return h
}

func TestProcess(t *testing.T) {
	h := newHarness(t, 3)

	require.NoError(t, h.proc.Process(context.Background(), "/in/report.pdf"))

	outDir := filepath.Join(h.cfg.Paths.Output, "report")
	assert.FileExists(t, filepath.Join(outDir, "report.mp4"))

	summaries, err := summarizer.ParseSummaryFile(filepath.Join(outDir, "summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "summary of ocr 1", 2: "summary of ocr 2", 3: "summary of ocr 3"}, summaries)

	assert.Equal(t, 1, h.embedder.calls)
	assert.NotNil(t, h.summarizer.index)
	assert.True(t, h.summarizer.retrieval)
	assert.Equal(t, 180*time.Second, h.summarizer.timeout)
	assert.Len(t, h.speech.texts, 3)

	// Images are removed unless keep_images is set; intermediates go after concat.
	assert.NoDirExists(t, filepath.Join(h.cfg.Paths.Work, "report", "images"))
	assert.NoFileExists(t, filepath.Join(h.cfg.Paths.Work, "report", "segment_page_1.mp4"))
	assert.NoFileExists(t, filepath.Join(h.cfg.Paths.Work, "report", "page_1.mp3"))
}

func TestProcessSinglePageSkipsRetrieval(t *testing.T) {
	h := newHarness(t, 1)
	h.cfg.Output.KeepImages = true

	require.NoError(t, h.proc.Process(context.Background(), "single.pdf"))

	assert.Equal(t, 0, h.embedder.calls)
	assert.Nil(t, h.summarizer.index)
	assert.False(t, h.summarizer.retrieval)
	assert.FileExists(t, filepath.Join(h.cfg.Paths.Work, "single", "images", "page_1.png"))
}

func TestProcessIndexFailureDisablesRetrieval(t *testing.T) {
	h := newHarness(t, 2)
	h.embedder.err = errors.New("embedding quota")

	require.NoError(t, h.proc.Process(context.Background(), "doc.pdf"))
	assert.Nil(t, h.summarizer.index)
	assert.False(t, h.summarizer.retrieval)
}

func TestProcessWritesDocx(t *testing.T) {
	h := newHarness(t, 2)
	h.cfg.Output.Docx = true

	require.NoError(t, h.proc.Process(context.Background(), "doc.pdf"))
	assert.FileExists(t, filepath.Join(h.cfg.Paths.Output, "doc", "doc.docx"))
}

func TestProcessRasterizeError(t *testing.T) {
	cfg := testConfig(t)
	proc := New(cfg, Dependencies{
		Rasterizer: &fakeRasterizer{err: models.ErrInvalidPDF},
		OCR:        fakeOCR{},
		Summarizer: &fakeSummarizer{},
	}, logger.New("error", "text"))

	err := proc.Process(context.Background(), "bad.pdf")
	assert.ErrorIs(t, err, models.ErrInvalidPDF)
}

func TestProcessWithoutModels(t *testing.T) {
	proc := New(testConfig(t), Dependencies{Executor: &fakeExecutor{}, Speech: &fakeSpeech{}}, logger.New("error", "text"))
	assert.Error(t, proc.Process(context.Background(), "doc.pdf"))
}

// docOCR labels each page with the document it came from, read off the
// <work>/<name>/images/page_N.png layout.
type docOCR struct{}

func (docOCR) ExtractAll(ctx context.Context, pages []models.PageRecord) ([]models.PageRecord, error) {
	out := append([]models.PageRecord(nil), pages...)
	for i := range out {
		doc := filepath.Base(filepath.Dir(filepath.Dir(out[i].ImagePath)))
		out[i].OCRText = fmt.Sprintf("%s shared words page %d", doc, out[i].PageNumber)
	}
	return out, nil
}

type staticCaptioner struct{}

func (staticCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	return "a page", nil
}

// overlapGenerator holds every call until both documents are summarizing,
// so their runs overlap.
type overlapGenerator struct {
	mu      sync.Mutex
	prompts []string
	seen    map[string]bool
	both    chan struct{}
}

func (g *overlapGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	for _, doc := range []string{"doca", "docb"} {
		if strings.Contains(prompt, "Page content:\n"+doc) {
			g.seen[doc] = true
		}
	}
	if len(g.seen) == 2 {
		select {
		case <-g.both:
		default:
			close(g.both)
		}
	}
	g.mu.Unlock()

	select {
	case <-g.both:
	case <-time.After(2 * time.Second):
	}
	return "summary", nil
}

func TestProcessConcurrentDocumentsKeepOwnContext(t *testing.T) {
	cfg := testConfig(t)
	gen := &overlapGenerator{seen: map[string]bool{}, both: make(chan struct{})}
	sum := summarizer.New(staticCaptioner{}, gen, nil, summarizer.Options{ModelConcurrency: 8}, logger.New("error", "text"))

	proc := New(cfg, Dependencies{
		Rasterizer: &fakeRasterizer{pages: 3},
		OCR:        docOCR{},
		Embedder:   rag.NewHashEmbedder(0),
		Summarizer: sum,
		Speech:     &fakeSpeech{},
		Executor:   &fakeExecutor{},
	}, logger.New("error", "text"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, doc := range []string{"doca.pdf", "docb.pdf"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = proc.Process(context.Background(), doc)
		}()
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	gen.mu.Lock()
	defer gen.mu.Unlock()
	require.Len(t, gen.prompts, 6)
	for _, prompt := range gen.prompts {
		assert.Contains(t, prompt, "RAG context:")
		switch {
		case strings.Contains(prompt, "Page content:\ndoca"):
			assert.NotContains(t, prompt, "docb", "document A grounded with B's text")
		case strings.Contains(prompt, "Page content:\ndocb"):
			assert.NotContains(t, prompt, "doca", "document B grounded with A's text")
		default:
			t.Errorf("prompt without page content: %q", prompt)
		}
	}
}

func TestAssemble(t *testing.T) {
	h := newHarness(t, 0)

	workDir := filepath.Join(h.cfg.Paths.Work, "deck")
	imagesDir := filepath.Join(workDir, "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0755))
	for _, n := range []int{2, 1} {
		require.NoError(t, os.WriteFile(filepath.Join(imagesDir, fmt.Sprintf("page_%d.png", n)), []byte("png"), 0644))
	}

	summaryPath := filepath.Join(workDir, "summary.txt")
	require.NoError(t, os.WriteFile(summaryPath, []byte("--- Page 1 ---\nonly the first\n"), 0644))

	out := filepath.Join(h.cfg.Paths.Output, "deck.mp4")
	final, err := h.proc.Assemble(context.Background(), imagesDir, summaryPath, out)
	require.NoError(t, err)

	assert.Equal(t, out, final.Path)
	assert.Equal(t, 2, final.Segments)
	assert.Equal(t, 2*time.Second, final.Duration)
	assert.Equal(t, []string{"only the first"}, h.speech.texts)
	assert.FileExists(t, out)
}

func TestAssembleMissingInputs(t *testing.T) {
	h := newHarness(t, 0)
	dir := t.TempDir()

	_, err := h.proc.Assemble(context.Background(), dir, filepath.Join(dir, "summary.txt"), "out.mp4")
	assert.ErrorIs(t, err, models.ErrNoPages)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_1.png"), []byte("png"), 0644))
	empty := filepath.Join(dir, "summary.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	_, err = h.proc.Assemble(context.Background(), dir, empty, "out.mp4")
	assert.ErrorIs(t, err, models.ErrEmptySummary)
}

func TestArchive(t *testing.T) {
	h := newHarness(t, 0)
	src := filepath.Join(t.TempDir(), "done.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0644))

	require.NoError(t, h.proc.Archive(context.Background(), src))
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(h.cfg.Paths.Archived, "done.pdf"))
}

func TestAssembleWithoutModels(t *testing.T) {
	cfg := testConfig(t)
	tts := &fakeSpeech{}
	proc := New(cfg, Dependencies{Speech: tts, Executor: &fakeExecutor{}}, logger.New("error", "text"))

	imagesDir := filepath.Join(cfg.Paths.Work, "deck", "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "page_1.png"), []byte("png"), 0644))
	summaryPath := filepath.Join(cfg.Paths.Work, "deck", "summary.txt")
	require.NoError(t, os.WriteFile(summaryPath, []byte("--- Page 1 ---\nnarrate me\n"), 0644))

	final, err := proc.Assemble(context.Background(), imagesDir, summaryPath, filepath.Join(cfg.Paths.Output, "deck.mp4"))
	require.NoError(t, err)
	assert.Equal(t, 1, final.Segments)
	assert.Equal(t, []string{"narrate me"}, tts.texts)
}

package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/models"
	"github.com/nguyentantai21042004/pagecast/internal/rag"
	"github.com/nguyentantai21042004/pagecast/internal/summarizer"
	"github.com/nguyentantai21042004/pagecast/internal/video"
)

// Process orchestrates the entire document pipeline
func (p *implProcessor) Process(ctx context.Context, pdfPath string) error {
	if p.rasterizer == nil || p.ocr == nil || p.summarizer == nil {
		return fmt.Errorf("process %s: processor was built without summarization models", pdfPath)
	}

	startTime := time.Now()
	ctx = logger.WithRunID(ctx, uuid.NewString())

	name := documentName(pdfPath)
	workDir := filepath.Join(p.cfg.Paths.Work, name)
	imagesDir := filepath.Join(workDir, "images")
	outputDir := filepath.Join(p.cfg.Paths.Output, name)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting document processing: %s", pdfPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Render pages
	pages, err := p.rasterizer.Rasterize(ctx, pdfPath, imagesDir)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("rasterize: %w", models.ErrNoPages)
	}

	// Step 2: OCR
	pages, err = p.ocr.ExtractAll(ctx, pages)
	if err != nil {
		return fmt.Errorf("ocr: %w", err)
	}

	// Step 3: Build this document's retrieval index before any summarization
	index := p.buildIndex(ctx, pages)

	// Step 4: Summarize every page
	records := p.summarizer.WithIndex(index).RunAll(ctx, pages, index != nil, p.cfg.Summarize.Timeout)

	summaryPath := filepath.Join(outputDir, p.cfg.Output.SummaryFile)
	if err := summarizer.WriteSummaryFile(summaryPath, records); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	p.logger.Info(ctx, "Summaries written: %s", summaryPath)

	if p.cfg.Output.Docx {
		docxPath := filepath.Join(outputDir, name+".docx")
		if err := summarizer.WriteDocx(name, records, docxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write docx: %v", err)
		} else {
			p.logger.Info(ctx, "Docx written: %s", docxPath)
		}
	}

	summaries := make(map[int]string, len(records))
	for _, r := range records {
		summaries[r.PageNumber] = r.Text
	}

	// Step 5: Narrate and assemble
	final, err := p.render(ctx, workDir, pages, summaries, filepath.Join(outputDir, name+".mp4"))
	if err != nil {
		return err
	}

	if !p.cfg.Output.KeepImages {
		p.removeDir(ctx, imagesDir)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output video: %s (%d segments, %s)", final.Path, final.Segments, final.Duration.Round(time.Millisecond))
	p.logger.Info(ctx, "Output summary: %s", summaryPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return nil
}

// Assemble rebuilds the video from a previous run's images and summary file.
func (p *implProcessor) Assemble(ctx context.Context, imagesDir, summaryPath, outputPath string) (models.FinalVideo, error) {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	p.logger.Info(ctx, "Assembling video from %s and %s", imagesDir, summaryPath)

	pages, err := video.DiscoverPages(imagesDir)
	if err != nil {
		return models.FinalVideo{}, err
	}

	summaries, err := summarizer.ParseSummaryFile(summaryPath)
	if err != nil {
		return models.FinalVideo{}, err
	}

	missing := 0
	for _, page := range pages {
		if _, ok := summaries[page.PageNumber]; !ok {
			missing++
		}
	}
	if missing > 0 {
		p.logger.Warn(ctx, "%d of %d pages have no summary and will be silent", missing, len(pages))
	}

	return p.render(ctx, filepath.Dir(imagesDir), pages, summaries, outputPath)
}

// buildIndex returns an index over this document's pages only, or nil when
// retrieval is off for the run.
func (p *implProcessor) buildIndex(ctx context.Context, pages []models.PageRecord) rag.Index {
	if p.embedder == nil || len(pages) <= 1 {
		return nil
	}
	index := rag.New(p.embedder, p.logger)
	if err := index.Build(ctx, pages); err != nil {
		p.logger.Warn(ctx, "Failed to build retrieval index, summarizing without context: %v", err)
		return nil
	}
	p.logger.Info(ctx, "Retrieval index built over %d pages", len(pages))
	return index
}

func (p *implProcessor) render(ctx context.Context, workDir string, pages []models.PageRecord, summaries map[int]string, outputPath string) (models.FinalVideo, error) {
	synth := video.NewSynthesizer(workDir, p.cfg, p.executor, p.speech, p.logger)
	segments, err := synth.SynthesizeAll(ctx, pages, summaries)
	if err != nil {
		return models.FinalVideo{}, fmt.Errorf("synthesize segments: %w", err)
	}

	asm := video.NewAssembler(workDir, p.cfg, p.executor, p.logger)
	final, err := asm.Assemble(ctx, segments, outputPath)
	if err != nil {
		return models.FinalVideo{}, fmt.Errorf("assemble video: %w", err)
	}
	return final, nil
}

func documentName(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

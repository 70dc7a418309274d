package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"google.golang.org/genai"
)

// GeminiOptions configures the Gemini backend.
type GeminiOptions struct {
	APIKeys        []string
	Model          string
	VisionModel    string
	EmbeddingModel string
}

// Gemini serves captioning, generation and embeddings from the Gemini API.
// It rotates through the supplied API keys on 429 / quota errors.
type Gemini struct {
	opts   GeminiOptions
	logger logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Gemini backend.
func NewGemini(opts GeminiOptions, log logger.Logger) (*Gemini, error) {
	if len(opts.APIKeys) == 0 {
		return nil, fmt.Errorf("gemini: at least one API key is required (GEMINI_API_KEYS)")
	}
	return &Gemini{opts: opts, logger: log}, nil
}

func (g *Gemini) Caption(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(captionPrompt),
			genai.NewPartFromBytes(data, mimeType(imagePath)),
		}, genai.RoleUser),
	}

	return g.generate(ctx, g.opts.VisionModel, contents)
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, g.opts.Model, genai.Text(prompt))
}

func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range nonEmpty(texts) {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	var vectors [][]float32
	err := g.withClient(ctx, func(client *genai.Client) error {
		resp, err := client.Models.EmbedContent(ctx, g.opts.EmbeddingModel, contents, nil)
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("embed content: expected %d embeddings", len(texts))
		}
		vectors = make([][]float32, len(resp.Embeddings))
		for i, e := range resp.Embeddings {
			vectors[i] = e.Values
		}
		return nil
	})
	return vectors, err
}

func (g *Gemini) generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	var text string
	err := g.withClient(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return fmt.Errorf("empty response from Gemini")
		}
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		text = strings.TrimSpace(sb.String())
		return nil
	})
	return text, err
}

// withClient runs fn with a client for the current key, rotating on rate limits.
func (g *Gemini) withClient(ctx context.Context, fn func(*genai.Client) error) error {
	var lastErr error

	for range len(g.opts.APIKeys) {
		idx, key := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		err = fn(client)
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return fmt.Errorf("gemini: %w", err)
		}

		g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		g.rotateKey(idx)
		lastErr = err
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *Gemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.opts.APIKeys[g.currentKey]
}

// rotateKey advances past idx; concurrent callers that saw the same key rotate once.
func (g *Gemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.opts.APIKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

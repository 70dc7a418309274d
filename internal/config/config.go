package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Models      ModelsConfig      `yaml:"models"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Speech      SpeechConfig      `yaml:"speech"`
	OCR         OCRConfig         `yaml:"ocr"`
	Render      RenderConfig      `yaml:"render"`
	Summarize   SummarizeConfig   `yaml:"summarize"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Work     string `yaml:"work"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

// ModelsConfig selects which backend serves each model role.
// Valid providers are "gemini", "openai" and, for embeddings only, "hash".
type ModelsConfig struct {
	Caption   string `yaml:"caption"`
	Text      string `yaml:"text"`
	Embedding string `yaml:"embedding"`
}

type GeminiConfig struct {
	Model          string   `yaml:"model"`
	VisionModel    string   `yaml:"vision_model"`
	EmbeddingModel string   `yaml:"embedding_model"`
	APIKeys        []string `yaml:"-"`
}

type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	ChatModel      string `yaml:"chat_model"`
	VisionModel    string `yaml:"vision_model"`
	EmbeddingModel string `yaml:"embedding_model"`
	APIKey         string `yaml:"-"`
}

// SpeechConfig selects the narration backend. Model and Voice apply to the
// openai provider; CommandVoice is an espeak voice name for the command
// provider, empty meaning the binary's default.
type SpeechConfig struct {
	Provider     string `yaml:"provider"`
	Model        string `yaml:"model"`
	Voice        string `yaml:"voice"`
	Command      string `yaml:"command"`
	CommandVoice string `yaml:"command_voice"`
}

type OCRConfig struct {
	Language string `yaml:"language"`
}

type RenderConfig struct {
	DPI float64 `yaml:"dpi"`
}

type SummarizeConfig struct {
	Timeout          time.Duration `yaml:"timeout"`
	RetrievalK       int           `yaml:"retrieval_k"`
	HardCancel       bool          `yaml:"hard_cancel"`
	ModelConcurrency int           `yaml:"model_concurrency"`
}

type FFmpegConfig struct {
	Binary      string `yaml:"binary"`
	Probe       string `yaml:"probe"`
	Encoder     string `yaml:"encoder"`
	Preset      string `yaml:"preset"`
	AudioCodec  string `yaml:"audio_codec"`
	PixelFormat string `yaml:"pixel_format"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type OutputConfig struct {
	SummaryFile string `yaml:"summary_file"`
	Docx        bool   `yaml:"docx"`
	KeepImages  bool   `yaml:"keep_images"`
}

// Load reads a YAML config file, overlays secrets from the environment
// (and a .env file when present) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		c.Gemini.APIKeys = splitKeys(keys)
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKeys = []string{key}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		c.OpenAI.BaseURL = url
	}
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	if c.Paths.Work == "" {
		return fmt.Errorf("paths.work is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Models.Caption == "" {
		c.Models.Caption = "gemini"
	}
	if c.Models.Text == "" {
		c.Models.Text = "gemini"
	}
	if c.Models.Embedding == "" {
		c.Models.Embedding = "hash"
	}
	for role, provider := range map[string]string{"caption": c.Models.Caption, "text": c.Models.Text} {
		if provider != "gemini" && provider != "openai" {
			return fmt.Errorf("models.%s: unknown provider %q", role, provider)
		}
	}
	switch c.Models.Embedding {
	case "gemini", "openai", "hash":
	default:
		return fmt.Errorf("models.embedding: unknown provider %q", c.Models.Embedding)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.VisionModel == "" {
		c.Gemini.VisionModel = c.Gemini.Model
	}
	if c.Gemini.EmbeddingModel == "" {
		c.Gemini.EmbeddingModel = "text-embedding-004"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if c.OpenAI.VisionModel == "" {
		c.OpenAI.VisionModel = c.OpenAI.ChatModel
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}

	if c.Speech.Provider == "" {
		c.Speech.Provider = "openai"
	}
	if c.Speech.Provider != "openai" && c.Speech.Provider != "command" {
		return fmt.Errorf("speech.provider: unknown provider %q", c.Speech.Provider)
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "tts-1"
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = "alloy"
	}
	if c.Speech.Command == "" {
		c.Speech.Command = "espeak-ng"
	}

	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.Render.DPI == 0 {
		c.Render.DPI = 300
	}

	if c.Summarize.Timeout == 0 {
		c.Summarize.Timeout = 180 * time.Second
	}
	if c.Summarize.Timeout < 0 {
		return fmt.Errorf("summarize.timeout must be positive, got %s", c.Summarize.Timeout)
	}
	if c.Summarize.RetrievalK == 0 {
		c.Summarize.RetrievalK = 3
	}
	if c.Summarize.ModelConcurrency == 0 {
		c.Summarize.ModelConcurrency = 4
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.Probe == "" {
		c.FFmpeg.Probe = "ffprobe"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.PixelFormat == "" {
		c.FFmpeg.PixelFormat = "yuv420p"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Output.SummaryFile == "" {
		c.Output.SummaryFile = "summary.txt"
	}

	return nil
}

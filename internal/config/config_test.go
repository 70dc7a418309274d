package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{Work: "data/work", Output: "data/output"},
			},
			wantErr: false,
		},
		{
			name: "missing work dir",
			config: Config{
				Paths: PathsConfig{Output: "data/output"},
			},
			wantErr: true,
		},
		{
			name: "missing output dir",
			config: Config{
				Paths: PathsConfig{Work: "data/work"},
			},
			wantErr: true,
		},
		{
			name: "unknown text provider",
			config: Config{
				Paths:  PathsConfig{Work: "data/work", Output: "data/output"},
				Models: ModelsConfig{Text: "llama"},
			},
			wantErr: true,
		},
		{
			name: "hash is not a caption provider",
			config: Config{
				Paths:  PathsConfig{Work: "data/work", Output: "data/output"},
				Models: ModelsConfig{Caption: "hash"},
			},
			wantErr: true,
		},
		{
			name: "unknown speech provider",
			config: Config{
				Paths:  PathsConfig{Work: "data/work", Output: "data/output"},
				Speech: SpeechConfig{Provider: "gtts"},
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: Config{
				Paths:     PathsConfig{Work: "data/work", Output: "data/output"},
				Summarize: SummarizeConfig{Timeout: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Work: "w", Output: "o"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 180*time.Second, cfg.Summarize.Timeout)
	assert.Equal(t, 3, cfg.Summarize.RetrievalK)
	assert.Equal(t, "gemini", cfg.Models.Text)
	assert.Equal(t, "hash", cfg.Models.Embedding)
	assert.Equal(t, "libx264", cfg.FFmpeg.Encoder)
	assert.Equal(t, "yuv420p", cfg.FFmpeg.PixelFormat)
	assert.Equal(t, 300.0, cfg.Render.DPI)
	assert.Equal(t, "summary.txt", cfg.Output.SummaryFile)
	assert.Equal(t, 2, cfg.Performance.MaxConcurrent)
	assert.Empty(t, cfg.Speech.CommandVoice)
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "k1, k2,,k3")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  work: "data/work"
  output: "data/output"

models:
  caption: "openai"
  text: "gemini"

summarize:
  timeout: 45s
  hard_cancel: true

speech:
  provider: "command"
  command_voice: "en-us"

ffmpeg:
  encoder: "h264_videotoolbox"

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/work", cfg.Paths.Work)
	assert.Equal(t, "openai", cfg.Models.Caption)
	assert.Equal(t, 45*time.Second, cfg.Summarize.Timeout)
	assert.True(t, cfg.Summarize.HardCancel)
	assert.Equal(t, "h264_videotoolbox", cfg.FFmpeg.Encoder)
	assert.Equal(t, "command", cfg.Speech.Provider)
	assert.Equal(t, "en-us", cfg.Speech.CommandVoice)
	assert.Equal(t, "alloy", cfg.Speech.Voice)
	assert.Equal(t, []string{"k1", "k2", "k3"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err)
}

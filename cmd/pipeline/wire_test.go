package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "config.yaml")
	content := "paths:\n" +
		"  work: \"" + filepath.Join(root, "work") + "\"\n" +
		"  output: \"" + filepath.Join(root, "output") + "\"\n" +
		"speech:\n" +
		"  provider: \"command\"\n" +
		"logging:\n" +
		"  level: \"error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewAppAssembleNeedsNoModelKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	prev := cfgFile
	cfgFile = writeConfig(t)
	t.Cleanup(func() { cfgFile = prev })

	a, err := newApp(false)
	require.NoError(t, err)
	assert.NotNil(t, a.proc)

	_, err = newApp(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbox/quill-cli/internal/api"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIBaseURL)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Save(&Config{APIBaseURL: "https://notes.example.com/api"}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com/api", cfg.APIBaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Save(&Config{APIBaseURL: "https://file.example.com/api"}))

	t.Setenv("QUILL_API_BASE_URL", "https://env.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.APIBaseURL)
}

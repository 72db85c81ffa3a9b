package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/quillbox/quill-cli/internal/api"
)

const (
	configDir      = ".quill"
	configFileName = "config.json"

	envPrefix = "QUILL"
)

// Config is the persisted CLI configuration. The auth token is NOT stored
// here; it lives in the keyring (see internal/auth).
type Config struct {
	APIBaseURL string `json:"api_base_url"`
}

// Path returns the path to the config file (~/.quill/config.json).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, configFileName), nil
}

// Load reads the config file and applies environment overrides. A missing
// file yields the defaults; QUILL_API_BASE_URL (or a .env file in the
// working directory) wins over the file.
func Load() (*Config, error) {
	// Best effort; most runs have no .env file.
	_ = godotenv.Load()

	cfg := &Config{APIBaseURL: api.DefaultBaseURL}

	path, err := Path()
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		if cfg.APIBaseURL == "" {
			cfg.APIBaseURL = api.DefaultBaseURL
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if url := v.GetString("API_BASE_URL"); url != "" {
		cfg.APIBaseURL = url
	}

	return cfg, nil
}

// Save writes the config file, creating ~/.quill if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

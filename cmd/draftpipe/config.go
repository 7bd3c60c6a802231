package main

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds backend credentials and endpoints. It is read once at
// startup and treated as immutable for the process lifetime; environment
// variables override file values.
type Config struct {
	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	WordPress struct {
		BaseURL     string `yaml:"base_url"`
		Username    string `yaml:"username"`
		AppPassword string `yaml:"app_password"`
	} `yaml:"wordpress"`
}

// LoadConfig reads the YAML config at path (missing files are fine) and
// applies environment overrides: GEMINI_API_KEY, GEMINI_MODEL, WP_BASE_URL,
// WP_USERNAME, WP_APP_PASSWORD.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	applyEnv(&cfg.Gemini.Model, "GEMINI_MODEL")
	applyEnv(&cfg.WordPress.BaseURL, "WP_BASE_URL")
	applyEnv(&cfg.WordPress.Username, "WP_USERNAME")
	applyEnv(&cfg.WordPress.AppPassword, "WP_APP_PASSWORD")

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// APIURLEnv overrides the API base URL from the settings file
const APIURLEnv = "RECIPESWIPE_API_URL"

// Settings configures the swipe client
type Settings struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	TokenFile   string        `yaml:"token_file"`
	Timeout     time.Duration `yaml:"timeout"`
	ReauthDelay time.Duration `yaml:"reauth_delay"`
	// RequestsPerSecond paces outgoing calls; zero disables pacing
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DefaultSettings points at a local API server
func DefaultSettings() Settings {
	tokenFile := ".recipeswipe/tokens.json"
	if home, err := os.UserHomeDir(); err == nil {
		tokenFile = filepath.Join(home, tokenFile)
	}
	return Settings{
		APIBaseURL:        "http://localhost:8000",
		TokenFile:         tokenFile,
		Timeout:           10 * time.Second,
		ReauthDelay:       500 * time.Millisecond,
		RequestsPerSecond: 10,
	}
}

// LoadSettings reads path over the defaults. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("failed to read settings: %w", err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		}
	}

	if url := os.Getenv(APIURLEnv); url != "" {
		s.APIBaseURL = url
	}
	if s.APIBaseURL == "" {
		return s, errors.New("api_base_url must not be empty")
	}
	return s, nil
}

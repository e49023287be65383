package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTopStoriesURL is the NYT "home" section top stories endpoint.
const DefaultTopStoriesURL = "https://api.nytimes.com/svc/topstories/v2/home.json"

// ErrMissingAPIKey is returned when API_KEY is not set.
var ErrMissingAPIKey = errors.New("API_KEY must be set")

// Web describes the configuration of the headlines web service.
type Web struct {
	BindAddr      string
	APIKey        string
	TopStoriesURL string
	FetchTimeout  time.Duration
	Debug         bool
}

// LoadWeb builds a Web config from environment variables.
func LoadWeb() (*Web, error) {
	c := &Web{
		BindAddr:      getEnv("WEB_BIND_ADDR", "0.0.0.0:8080"),
		APIKey:        strings.TrimSpace(os.Getenv("API_KEY")),
		TopStoriesURL: getEnv("TOPSTORIES_URL", DefaultTopStoriesURL),
		FetchTimeout:  getDuration("TOPSTORIES_TIMEOUT", 0),
		Debug:         getBool("DEBUG", false),
	}

	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.FetchTimeout < 0 {
		return nil, fmt.Errorf("TOPSTORIES_TIMEOUT cannot be negative")
	}

	u, err := url.Parse(c.TopStoriesURL)
	if err != nil {
		return nil, fmt.Errorf("TOPSTORIES_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("TOPSTORIES_URL must be an absolute http(s) url, got %q", c.TopStoriesURL)
	}

	return c, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Variables already present in the environment win, and missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

// getDuration falls back on unset or unparsable values.
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

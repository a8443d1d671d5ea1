package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where eduplan stores its own data
	DSN string
	// Driver is the database driver (sqlite)
	Driver string
	// Version is the current version of server
	Version string

	// Context7 Configuration
	Context7APIKey  string // EDUPLAN_CONTEXT7_API_KEY
	Context7BaseURL string // EDUPLAN_CONTEXT7_BASE_URL (default: https://api.context7.dev/v1)

	// LLM Configuration (lesson plan generation)
	OpenAIAPIKey  string // EDUPLAN_OPENAI_API_KEY
	OpenAIBaseURL string // EDUPLAN_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	LLMModel      string // EDUPLAN_LLM_MODEL (default: gpt-4o-mini)

	// Practices service configuration
	PracticeCacheTTL time.Duration // EDUPLAN_PRACTICE_CACHE_TTL (default: 1h)
	PracticeTimeout  time.Duration // EDUPLAN_PRACTICE_TIMEOUT (default: 5s per category)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true if the lesson generator can reach an LLM backend.
func (p *Profile) IsLLMEnabled() bool {
	return p.OpenAIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from EDUPLAN_* environment variables.
// Values already set on the profile (e.g. from flags) win over defaults
// but lose to explicit environment overrides.
func (p *Profile) FromEnv() {
	getDurationEnv := func(key string, defaultValue time.Duration) time.Duration {
		val := os.Getenv(key)
		if val == "" {
			return defaultValue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return defaultValue
		}
		return d
	}

	p.Context7APIKey = getEnvOrDefault("EDUPLAN_CONTEXT7_API_KEY", p.Context7APIKey)
	p.Context7BaseURL = getEnvOrDefault("EDUPLAN_CONTEXT7_BASE_URL", "https://api.context7.dev/v1")
	p.OpenAIAPIKey = getEnvOrDefault("EDUPLAN_OPENAI_API_KEY", p.OpenAIAPIKey)
	p.OpenAIBaseURL = getEnvOrDefault("EDUPLAN_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.LLMModel = getEnvOrDefault("EDUPLAN_LLM_MODEL", "gpt-4o-mini")
	p.PracticeCacheTTL = getDurationEnv("EDUPLAN_PRACTICE_CACHE_TTL", time.Hour)
	p.PracticeTimeout = getDurationEnv("EDUPLAN_PRACTICE_TIMEOUT", 5*time.Second)

	if port := os.Getenv("EDUPLAN_PORT"); port != "" {
		if v, err := strconv.Atoi(port); err == nil {
			p.Port = v
		}
	}
	if addr := os.Getenv("EDUPLAN_ADDR"); addr != "" {
		p.Addr = addr
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" {
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}

	p.Data = dataDir
	if p.DSN == "" {
		dbFile := fmt.Sprintf("eduplan_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.PracticeCacheTTL <= 0 {
		p.PracticeCacheTTL = time.Hour
	}
	if p.PracticeTimeout <= 0 {
		p.PracticeTimeout = 5 * time.Second
	}

	return nil
}

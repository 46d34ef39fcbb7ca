package config

import (
	"os"
	"strings"
	"sync"
)

type Config struct {
	Addr       string `json:"addr"`
	TextModel  string `json:"text_model"`
	ImageModel string `json:"image_model"`
	CacheDir   string `json:"cache_dir"`

	ServiceName    string `json:"service_name"`
	ServiceVersion string `json:"service_version"`
	OTLPEndpoint   string `json:"otlp_endpoint"`
}

func Load() (*Config, error) {
	config := &Config{
		Addr:           getEnvOrDefault("FRIDGECHEF_ADDR", ":8080"),
		TextModel:      getEnvOrDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:     getEnvOrDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		CacheDir:       getEnvOrDefault("FRIDGECHEF_CACHE_DIR", "cache"),
		ServiceName:    getEnvOrDefault("SERVICE_NAME", "fridgechef"),
		ServiceVersion: getEnvOrDefault("SERVICE_VERSION", "dev"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// CredentialEnvVar is where the hosting environment injects the Gemini key.
const CredentialEnvVar = "GEMINI_API_KEY"

// Cell is a process-wide configuration value that can be re-read after the
// environment changes underneath us (the key picker injects the credential
// late). Get returns the last loaded value; Refresh re-runs the lookup.
type Cell struct {
	mu     sync.RWMutex
	value  string
	loaded bool
	lookup func() string
}

func NewCell(lookup func() string) *Cell {
	return &Cell{lookup: lookup}
}

// CredentialCell reads the injected API credential from the environment.
func CredentialCell() *Cell {
	return NewCell(func() string { return os.Getenv(CredentialEnvVar) })
}

func (c *Cell) Get() string {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.value
	}
	c.mu.RUnlock()
	return c.Refresh()
}

func (c *Cell) Refresh() string {
	value := c.lookup()
	c.mu.Lock()
	c.value = value
	c.loaded = true
	c.mu.Unlock()
	return value
}

// Usable reports whether the cell holds a real credential. Some hosts inject
// the literal string "undefined" when nothing was configured.
func (c *Cell) Usable() bool {
	return UsableCredential(c.Get())
}

func UsableCredential(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && trimmed != "undefined"
}

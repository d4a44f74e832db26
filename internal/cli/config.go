package cli

import (
	"os"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CODERELAY_SERVER", "http://localhost:3001"),
		Output:    "text",
		Verbose:   false,
	}
}

// WebsocketURL derives the websocket endpoint from the server URL
func (c *Config) WebsocketURL() string {
	url := c.ServerURL
	if strings.HasPrefix(url, "https://") {
		url = "wss://" + strings.TrimPrefix(url, "https://")
	} else if strings.HasPrefix(url, "http://") {
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return strings.TrimSuffix(url, "/") + "/ws"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

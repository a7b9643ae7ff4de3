// Package twelvedata provides a quote client for the Twelve Data market API.
package twelvedata

import "time"

// DefaultBaseURL is the public Twelve Data API host.
const DefaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://api.twelvedata.com")
	Timeout time.Duration // HTTP request timeout
}

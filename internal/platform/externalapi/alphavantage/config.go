// Package alphavantage provides a quote client for the Alpha Vantage GLOBAL_QUOTE endpoint.
package alphavantage

import "time"

// DefaultBaseURL is the public Alpha Vantage API host.
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication ("demo" works for a few symbols)
	BaseURL string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Timeout time.Duration // HTTP request timeout
}

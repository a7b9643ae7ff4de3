// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// QuoteResponse represents the JSON response from the Twelve Data quote endpoint.
// Numeric fields are returned as strings. On failure the API answers
// HTTP 200 with Status "error" and a Code/Message pair.
type QuoteResponse struct {
	Status        string `json:"status,omitempty"`
	Code          int    `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Currency      string `json:"currency"`
	Close         string `json:"close"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
}

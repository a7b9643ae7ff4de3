// Package dto defines data transfer objects for the symbolsearch HTTP API.
package dto

// SearchResult represents a symbol search hit in the API response.
type SearchResult struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname,omitempty"`
	LongName  string `json:"longname,omitempty"`
	Exchange  string `json:"exchange,omitempty"`
	QuoteType string `json:"quoteType,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// SearchResponse wraps the hits.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Package entity defines the domain models for the symbolsearch feature.
package entity

// SymbolMatch is a single symbol search hit returned by an upstream directory.
type SymbolMatch struct {
	Symbol    string
	ShortName string
	LongName  string
	Exchange  string
	QuoteType string
	Currency  string
}

// Package usecase implements symbol lookup against an upstream directory.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pricing_backend/internal/feature/symbolsearch/domain/entity"
)

var (
	// ErrEmptyQuery is returned when the search term is blank.
	ErrEmptyQuery = errors.New("query is required")
	// ErrUpstream wraps failures of the upstream directory.
	ErrUpstream = errors.New("symbol search upstream failed")
)

// SymbolSearcher abstracts the upstream symbol directory.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]entity.SymbolMatch, error)
}

// SearchUsecase provides symbol lookup for the ticker picker.
type SearchUsecase struct {
	searcher SymbolSearcher
}

// NewSearchUsecase creates a new SearchUsecase.
func NewSearchUsecase(s SymbolSearcher) *SearchUsecase {
	return &SearchUsecase{searcher: s}
}

// Search trims the query and forwards it upstream.
func (u *SearchUsecase) Search(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	out, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return out, nil
}

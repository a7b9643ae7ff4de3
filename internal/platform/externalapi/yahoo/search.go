package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"pricing_backend/internal/feature/symbolsearch/domain/entity"
	"pricing_backend/internal/feature/symbolsearch/usecase"
)

// DefaultSearchBaseURL is the Yahoo Finance query host used for symbol search.
const DefaultSearchBaseURL = "https://query1.finance.yahoo.com"

const searchQuotesCount = 10

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
		Currency  string `json:"currency"`
	} `json:"quotes"`
}

// SearchClient はYahoo Financeの銘柄検索APIを呼び出すSymbolSearcher実装です。
type SearchClient struct {
	baseURL string
	client  *http.Client
}

var _ usecase.SymbolSearcher = (*SearchClient)(nil)

// NewSearchClient は検索クライアントを生成します。baseURL が空の場合は DefaultSearchBaseURL を使用します。
func NewSearchClient(baseURL string, client *http.Client) *SearchClient {
	if baseURL == "" {
		baseURL = DefaultSearchBaseURL
	}
	return &SearchClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Search は query に一致する銘柄候補を返します。
func (s *SearchClient) Search(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", fmt.Sprint(searchQuotesCount))
	q.Set("newsCount", "0")

	u := fmt.Sprintf("%s/v1/finance/search?%s", s.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// User-Agent がないと拒否される
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; pricing-backend)")
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo search http %d", res.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("yahoo search: decode: %w", err)
	}

	out := make([]entity.SymbolMatch, 0, len(body.Quotes))
	for _, r := range body.Quotes {
		if r.Symbol == "" {
			continue
		}
		out = append(out, entity.SymbolMatch{
			Symbol:    r.Symbol,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Exchange:  r.Exchange,
			QuoteType: r.QuoteType,
			Currency:  r.Currency,
		})
	}
	return out, nil
}

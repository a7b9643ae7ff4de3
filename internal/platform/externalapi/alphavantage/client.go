package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pricing_backend/internal/feature/quotes/domain"
	"pricing_backend/internal/feature/quotes/domain/entity"
	"pricing_backend/internal/feature/quotes/usecase"
)

const providerName = "alphavantage"

// globalQuoteResponse は GLOBAL_QUOTE レスポンスのうち使用するフィールドです。
// Alpha Vantage は数値をすべて文字列で返します。
type globalQuoteResponse struct {
	GlobalQuote *struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// Client はAlpha Vantage APIから価格を取得するQuoteProvider実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.QuoteProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, client: client}
}

// Quote は GLOBAL_QUOTE を呼び出し、価格を entity.Quote に変換します。
func (c *Client) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return entity.Quote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Quote{}, &domain.StatusError{Provider: providerName, StatusCode: res.StatusCode}
	}

	var body globalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, fmt.Errorf("%s: decode: %v: %w", providerName, err, domain.ErrMalformedResponse)
	}
	return body.toQuote()
}

func (b globalQuoteResponse) toQuote() (entity.Quote, error) {
	// レート制限・APIキー不正はHTTP 200で通知される
	for _, msg := range []string{b.ErrorMessage, b.Note, b.Information} {
		if msg != "" {
			return entity.Quote{}, fmt.Errorf("%s: %s: %w", providerName, msg, domain.ErrNoPrice)
		}
	}
	if b.GlobalQuote == nil || strings.TrimSpace(b.GlobalQuote.Price) == "" {
		return entity.Quote{}, fmt.Errorf("%s: %w", providerName, domain.ErrNoPrice)
	}

	gq := b.GlobalQuote
	price, err := strconv.ParseFloat(strings.TrimSpace(gq.Price), 64)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("%s: parse price %q: %w", providerName, gq.Price, domain.ErrMalformedResponse)
	}

	return entity.Quote{
		Symbol:        strings.TrimSpace(gq.Symbol),
		Price:         price,
		Change:        parseOptional(gq.Change),
		ChangePercent: parseOptional(strings.TrimSuffix(strings.TrimSpace(gq.ChangePercent), "%")),
	}, nil
}

// parseOptional は補助的な数値フィールドをパースします。パースできない場合は nil です。
func parseOptional(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

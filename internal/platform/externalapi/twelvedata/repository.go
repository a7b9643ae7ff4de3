package twelvedata

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
	"pricing_backend/internal/platform/externalapi/twelvedata/dto"
)

const providerName = "twelvedata"

// TwelveDataQuotes はTwelve Data外部APIから最新価格を取得するQuoteProvider実装です。
type TwelveDataQuotes struct {
	cfg    Config
	client *http.Client
}

// TwelveDataQuotesがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*TwelveDataQuotes)(nil)

// NewTwelveDataQuotes は指定された設定とHTTPクライアントでTwelveDataQuotesの新しいインスタンスを生成します。
func NewTwelveDataQuotes(cfg Config, client *http.Client) *TwelveDataQuotes {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &TwelveDataQuotes{cfg: cfg, client: client}
}

// Quote はTwelve Data APIの quote エンドポイントから最新の終値を取得し、
// entity.Quote として返します。
func (t *TwelveDataQuotes) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("apikey", t.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s/quote?%s", strings.TrimRight(t.cfg.BaseURL, "/"), q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, err
	}

	// リクエストを実行
	res, err := t.client.Do(req)
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

	// JSONレスポンスをDTOにデコード
	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, fmt.Errorf("twelvedata: decode: %v: %w", err, domain.ErrMalformedResponse)
	}
	if body.Status == "error" {
		if body.Code >= 400 {
			return entity.Quote{}, fmt.Errorf("twelvedata: %s: %w", body.Message,
				&domain.StatusError{Provider: providerName, StatusCode: body.Code})
		}
		return entity.Quote{}, fmt.Errorf("twelvedata: %s: %w", body.Message, domain.ErrNoPrice)
	}
	if strings.TrimSpace(body.Close) == "" {
		return entity.Quote{}, fmt.Errorf("twelvedata: %w", domain.ErrNoPrice)
	}

	// 終値をパース
	price, err := strconv.ParseFloat(strings.TrimSpace(body.Close), 64)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("twelvedata: parse close %q: %w", body.Close, domain.ErrMalformedResponse)
	}

	// ドメインエンティティに変換
	return entity.Quote{
		Symbol:        body.Symbol,
		Price:         price,
		Currency:      body.Currency,
		Change:        parseOptional(body.Change),
		ChangePercent: parseOptional(body.PercentChange),
	}, nil
}

func parseOptional(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

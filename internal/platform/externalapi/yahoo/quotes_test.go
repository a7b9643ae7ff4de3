package yahoo

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing_backend/internal/feature/quotes/domain"
)

func TestQuotes_Quote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		get       QuoteFunc
		wantErr   error
		wantPrice float64
	}{
		{
			name: "success: maps regular market fields",
			get: func(symbol string) (*finance.Quote, error) {
				q := &finance.Quote{Symbol: "GC=F", CurrencyID: "USD"}
				q.RegularMarketPrice = 1950.4
				q.RegularMarketChange = 3.1
				q.RegularMarketChangePercent = 0.16
				return q, nil
			},
			wantPrice: 1950.4,
		},
		{
			name:    "failure: unknown symbol returns nil quote",
			get:     func(symbol string) (*finance.Quote, error) { return nil, nil },
			wantErr: domain.ErrNoPrice,
		},
		{
			name:    "failure: zero price",
			get:     func(symbol string) (*finance.Quote, error) { return &finance.Quote{Symbol: symbol}, nil },
			wantErr: domain.ErrNoPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := NewQuotesWithFunc(tt.get).Quote(context.Background(), "GC=F")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "GC=F", q.Symbol)
			assert.Equal(t, "USD", q.Currency)
			assert.InDelta(t, tt.wantPrice, q.Price, 1e-9)
			require.NotNil(t, q.Change)
			require.NotNil(t, q.ChangePercent)
			assert.InDelta(t, 3.1, *q.Change, 1e-9)
			assert.InDelta(t, 0.16, *q.ChangePercent, 1e-9)
		})
	}
}

func TestQuotes_Quote_BackendError(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("remote error")
	_, err := NewQuotesWithFunc(func(string) (*finance.Quote, error) { return nil, backendErr }).
		Quote(context.Background(), "AAPL")

	assert.ErrorIs(t, err, backendErr)
}

func TestQuotes_Quote_ContextDone(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	y := NewQuotesWithFunc(func(string) (*finance.Quote, error) {
		<-release
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := y.Quote(ctx, "AAPL")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchClient_Search_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("quotesCount"))
		assert.Equal(t, "0", r.URL.Query().Get("newsCount"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"quotes": [
				{"symbol": "AAPL", "shortname": "Apple Inc.", "longname": "Apple Inc.", "exchange": "NMS", "quoteType": "EQUITY"},
				{"shortname": "no symbol, dropped"},
				{"symbol": "APC.F", "shortname": "APPLE INC", "exchange": "FRA", "quoteType": "EQUITY", "currency": "EUR"}
			]
		}`))
	}))
	defer server.Close()

	c := NewSearchClient(server.URL, server.Client())
	got, err := c.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "Apple Inc.", got[0].LongName)
	assert.Equal(t, "NMS", got[0].Exchange)
	assert.Equal(t, "EQUITY", got[0].QuoteType)
	assert.Equal(t, "EUR", got[1].Currency)
}

func TestSearchClient_Search_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewSearchClient(server.URL, server.Client()).Search(context.Background(), "apple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yahoo search http 429")
}

func TestSearchClient_Search_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid`))
	}))
	defer server.Close()

	_, err := NewSearchClient(server.URL, server.Client()).Search(context.Background(), "apple")
	assert.Error(t, err)
}

func TestNewSearchClient_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	c := NewSearchClient("", &http.Client{})
	assert.Equal(t, DefaultSearchBaseURL, c.baseURL)
}

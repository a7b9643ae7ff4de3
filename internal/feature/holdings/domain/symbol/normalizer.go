// Package symbol maps a holding's ticker and asset class to the symbol a
// quote provider understands.
package symbol

import (
	"sort"
	"strings"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

// CryptoRule maps asset classes containing Keyword to Symbol.
type CryptoRule struct {
	Keyword string
	Symbol  string
}

// Table はプロバイダーごとのコード表です。
type Table struct {
	Commodities map[entity.AssetClass]string
	Crypto      []CryptoRule
}

// AlphaVantageTable uses FX-style pairs.
var AlphaVantageTable = Table{
	Commodities: map[entity.AssetClass]string{
		entity.AssetClassGold:   "XAUUSD",
		entity.AssetClassSilver: "XAGUSD",
	},
	Crypto: []CryptoRule{
		{Keyword: "Bitcoin", Symbol: "BTCUSD"},
		{Keyword: "Ethereum", Symbol: "ETHUSD"},
	},
}

// TwelveDataTable uses slash-separated pairs.
var TwelveDataTable = Table{
	Commodities: map[entity.AssetClass]string{
		entity.AssetClassGold:   "XAU/USD",
		entity.AssetClassSilver: "XAG/USD",
	},
	Crypto: []CryptoRule{
		{Keyword: "Bitcoin", Symbol: "BTC/USD"},
		{Keyword: "Ethereum", Symbol: "ETH/USD"},
	},
}

// YahooTable uses futures for metals and dash-separated crypto pairs.
var YahooTable = Table{
	Commodities: map[entity.AssetClass]string{
		entity.AssetClassGold:   "GC=F",
		entity.AssetClassSilver: "SI=F",
	},
	Crypto: []CryptoRule{
		{Keyword: "Bitcoin", Symbol: "BTC-USD"},
		{Keyword: "Ethereum", Symbol: "ETH-USD"},
	},
}

// TableFor returns the built-in table for a provider name; unknown names get AlphaVantageTable.
func TableFor(provider string) Table {
	switch strings.ToLower(provider) {
	case "yahoo":
		return YahooTable
	case "twelvedata":
		return TwelveDataTable
	default:
		return AlphaVantageTable
	}
}

// WithOverrides returns a copy of t with entries replaced or added.
// crypto keys are keywords; new keywords are appended in sorted order.
func (t Table) WithOverrides(commodities, crypto map[string]string) Table {
	out := Table{
		Commodities: make(map[entity.AssetClass]string, len(t.Commodities)+len(commodities)),
		Crypto:      append([]CryptoRule(nil), t.Crypto...),
	}
	for k, v := range t.Commodities {
		out.Commodities[k] = v
	}
	for k, v := range commodities {
		out.Commodities[entity.AssetClass(k)] = v
	}

	keys := make([]string, 0, len(crypto))
	for k := range crypto {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		replaced := false
		for i := range out.Crypto {
			if strings.EqualFold(out.Crypto[i].Keyword, k) {
				out.Crypto[i].Symbol = crypto[k]
				replaced = true
				break
			}
		}
		if !replaced {
			out.Crypto = append(out.Crypto, CryptoRule{Keyword: k, Symbol: crypto[k]})
		}
	}
	return out
}

// Normalizer resolves provider symbols using a Table.
type Normalizer struct {
	table Table
}

// NewNormalizer creates a Normalizer for the given table.
func NewNormalizer(t Table) *Normalizer {
	return &Normalizer{table: t}
}

// Normalize は ticker と資産クラスからプロバイダー用のシンボルを求めます。
// 現金クラスと空のティッカーは価格取得の対象外で、ok == false を返します。
//
//	Gold / Silver        -> コード表の商品シンボル
//	"Bitcoin" 等を含む   -> コード表の暗号資産シンボル
//	それ以外             -> 大文字化したティッカー
func (n *Normalizer) Normalize(ticker string, class entity.AssetClass) (string, bool) {
	if class.IsCash() {
		return "", false
	}
	if s, ok := n.table.Commodities[class]; ok {
		return s, true
	}
	lc := strings.ToLower(string(class))
	for _, r := range n.table.Crypto {
		if strings.Contains(lc, strings.ToLower(r.Keyword)) {
			return r.Symbol, true
		}
	}
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", false
	}
	return t, true
}

// Package entity defines the domain models for the holdings feature.
package entity

import "strings"

// AssetClass はユーザーが選択する資産クラスです。下記以外の文字列も許容します。
type AssetClass string

const (
	AssetClassEquity   AssetClass = "Equity"
	AssetClassCashUSD  AssetClass = "Cash - USD"
	AssetClassCashCNY  AssetClass = "Cash - CNY"
	AssetClassGold     AssetClass = "Gold"
	AssetClassSilver   AssetClass = "Silver"
	AssetClassBitcoin  AssetClass = "Bitcoin (BTC)"
	AssetClassEthereum AssetClass = "Ethereum (ETH)"
)

const cashPrefix = "Cash - "

// IsCash reports whether the class belongs to the "Cash - XXX" family.
func (c AssetClass) IsCash() bool {
	return strings.HasPrefix(string(c), cashPrefix)
}

// Currency returns the XXX of a "Cash - XXX" class, or "" for non-cash classes.
func (c AssetClass) Currency() string {
	if !c.IsCash() {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(string(c), cashPrefix)))
}

// Holding はポートフォリオ内の1ポジションです。
//
// MarketPrice は最後に取得（またはフォールバック）した価格で、未取得の場合は nil です。
// LoadingPrice が true の間、同じ ID に対する価格取得は他に走りません。
type Holding struct {
	ID           string
	Ticker       string
	AssetClass   AssetClass
	Shares       float64
	StaticPrice  float64
	MarketPrice  *float64
	PriceSymbol  string
	LoadingPrice bool
	PriceError   string
}

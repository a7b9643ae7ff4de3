// Package entity defines the domain models for the quotes feature.
package entity

// Quote は外部プロバイダーから取得した1銘柄分の価格です。
// Price は常に有限かつ正の値で、Change / ChangePercent はプロバイダーが返さない場合 nil になります。
type Quote struct {
	Symbol        string
	Price         float64
	Currency      string
	Change        *float64
	ChangePercent *float64
}

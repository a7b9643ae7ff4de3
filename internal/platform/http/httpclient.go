// Package http provides the outbound HTTP client shared by the quote providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は価格プロバイダー呼び出し用のHTTPクライアントを作成します。
//
// http.DefaultClient にはタイムアウトがないため使用しません。
// 並列取得で同一ホストへ接続が集中するため、ホストあたりのアイドル接続数を増やしています。
// timeout はリクエスト全体の上限で、0 の場合は呼び出し元の context のみに従います。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// Package ratelimiter は価格プロバイダー呼び出しの固定ウィンドウ型レート制限を提供します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter は interval ごとに limit 回までの呼び出しを許可します。
// 複数のgoroutineから同時に呼び出しても安全です。limit が 0 以下の場合は制限しません。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しい RateLimiter を生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// WaitIfNeeded は現在のウィンドウに空きがあれば枠を1つ消費して即座に戻ります。
// 空きがなければウィンドウが切り替わるまでロックの外で待機します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返し、枠を消費しません。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}
	for {
		wait, ok := rl.reserve()
		if ok {
			return nil
		}
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve takes a slot in the current window, or reports how long until the next one opens.
func (rl *RateLimiter) reserve() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count < rl.limit {
		rl.count++
		return 0, true
	}
	return rl.lastReset.Add(rl.interval).Sub(now), false
}

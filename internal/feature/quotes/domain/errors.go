// Package domain defines errors shared by quote providers.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrice はレスポンスに価格が含まれていない場合に返されます（未知の銘柄やレート制限の通知など）。
	ErrNoPrice = errors.New("quote: no price in response")
	// ErrMalformedResponse はレスポンスが想定した形式でない場合に返されます。
	ErrMalformedResponse = errors.New("quote: malformed response")
)

// StatusError is returned when a provider answers with a non-success HTTP status.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s http %d", e.Provider, e.StatusCode)
}

package usecase

import "errors"

var (
	ErrHoldingNotFound = errors.New("holding not found")
	ErrInvalidShares   = errors.New("shares must be a finite number >= 0")
	ErrInvalidPrice    = errors.New("price must be a finite number >= 0")
	ErrTickerRequired  = errors.New("ticker is required")
	ErrAssetClassEmpty = errors.New("asset class is required")
)

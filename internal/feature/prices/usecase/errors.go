package usecase

import "errors"

var ErrNoTickers = errors.New("no tickers tracked")

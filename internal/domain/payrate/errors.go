package payrate

import "errors"

var (
	ErrPayRateNotFound = errors.New("pay rate configuration not found")
)

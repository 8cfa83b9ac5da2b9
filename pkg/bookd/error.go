package bookd

import "errors"

var (
	ErrDuplicateRequest    = errors.New("duplicate client order id")
	ErrUnknownRequest      = errors.New("client order id not found")
	ErrPriceChangeRejected = errors.New("price change not supported on resize")
)

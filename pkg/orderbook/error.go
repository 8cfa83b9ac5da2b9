package orderbook

import "errors"

var (
	ErrInvalidSide      = errors.New("invalid order side")
	ErrInvalidLevel     = errors.New("invalid book level")
	ErrUnknownOrderID   = errors.New("unknown order id")
	ErrDuplicateOrderID = errors.New("duplicate order id")
)

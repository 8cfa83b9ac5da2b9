package model

import (
	"time"

	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// AddOrder asks the service to rest a new limit order. ClOrdID is the
// gateway's request id; the service assigns the numeric order id.
type AddOrder struct {
	ClOrdID      string
	Account      string
	Symbol       string
	Side         orderbook.Side
	Price        decimal.Decimal
	Size         decimal.Decimal
	TransactTime time.Time
}

// CancelOrder references the request that placed (or last replaced) the
// order via OrigClOrdID.
type CancelOrder struct {
	ClOrdID      string
	OrigClOrdID  string
	Symbol       string
	TransactTime time.Time
}

// ResizeOrder changes the remaining quantity of a resting order. Price
// changes are not part of the book contract and are rejected upstream.
type ResizeOrder struct {
	ClOrdID      string
	OrigClOrdID  string
	Symbol       string
	NewPrice     decimal.Decimal
	NewSize      decimal.Decimal
	TransactTime time.Time
}

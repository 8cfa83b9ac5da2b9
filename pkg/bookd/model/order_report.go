package model

import (
	"time"

	"github.com/marketgrid/depthbook/pkg/orderbook"
)

type ReportStatus string

const (
	StatusResting  ReportStatus = "Resting"
	StatusCanceled ReportStatus = "Canceled"
	StatusResized  ReportStatus = "Resized"
	StatusRejected ReportStatus = "Rejected"
)

// OrderReport is the service's acknowledgement back to the gateway.
type OrderReport struct {
	ClOrdID      string
	OrigClOrdID  string
	OrderID      int64
	Account      string
	Symbol       string
	Side         orderbook.Side
	Price        float64
	Size         int64
	Status       ReportStatus
	Text         string
	TransactTime time.Time
}

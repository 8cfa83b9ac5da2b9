package journal

import "github.com/marketgrid/depthbook/pkg/bookd/model"

// Journal records every book mutation and keeps the request-id chain: each
// cancel/replace references the previous ClOrdID, so the chain walks back to
// the original add.
type Journal interface {
	Append(ev *model.BookEvent)
	History(orderID int64) []*model.BookEvent
	TrackRequestChain(orderID int64, clOrdID, origClOrdID string)
	OrderID(clOrdID string) (int64, bool)
	LatestClOrdID(orderID int64) string
	RequestChain(clOrdID string) []string
}

package model

import (
	"fmt"
	"time"

	"github.com/marketgrid/depthbook/pkg/orderbook"
)

type EventAction string

const (
	ActionAdd    EventAction = "ADD"
	ActionCancel EventAction = "CANCEL"
	ActionResize EventAction = "RESIZE"
)

// BookEvent is one journal record: a single mutation applied to a book.
// The sequence of BookEvents for an instrument replays to the same book
// state.
type BookEvent struct {
	EventID     string
	OrderID     int64
	ClOrdID     string
	OrigClOrdID string
	Symbol      string
	Side        orderbook.Side
	Action      EventAction
	Price       float64
	Size        int64
	Timestamp   time.Time
}

func (BookEvent) TableName() string {
	return "book_events"
}

func NewBookEventAdd(o *orderbook.Order, clOrdID string, ts time.Time) *BookEvent {
	return &BookEvent{
		EventID:   NewEventID(o.ID, ActionAdd, ts),
		OrderID:   o.ID,
		ClOrdID:   clOrdID,
		Symbol:    o.Symbol,
		Side:      o.Side,
		Action:    ActionAdd,
		Price:     o.Price,
		Size:      o.Size,
		Timestamp: ts,
	}
}

func NewBookEventCancel(orderID int64, symbol, clOrdID, origClOrdID string, ts time.Time) *BookEvent {
	return &BookEvent{
		EventID:     NewEventID(orderID, ActionCancel, ts),
		OrderID:     orderID,
		ClOrdID:     clOrdID,
		OrigClOrdID: origClOrdID,
		Symbol:      symbol,
		Action:      ActionCancel,
		Timestamp:   ts,
	}
}

func NewBookEventResize(orderID int64, symbol, clOrdID, origClOrdID string, newSize int64, ts time.Time) *BookEvent {
	return &BookEvent{
		EventID:     NewEventID(orderID, ActionResize, ts),
		OrderID:     orderID,
		ClOrdID:     clOrdID,
		OrigClOrdID: origClOrdID,
		Symbol:      symbol,
		Action:      ActionResize,
		Size:        newSize,
		Timestamp:   ts,
	}
}

func NewEventID(orderID int64, action EventAction, ts time.Time) string {
	return fmt.Sprintf("%d-%s-%d", orderID, action, ts.UnixNano())
}

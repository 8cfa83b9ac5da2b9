package orderbook

// Side marks which half of the book an order rests on.
type Side string

const (
	Bid   Side = "BID"
	Offer Side = "OFFER"
)

// Order is one resting limit order. The caller assigns the ID and constructs
// the order; the book never generates identity. Size is the remaining
// quantity and is the only field that changes while the order rests.
type Order struct {
	ID     int64
	Symbol string
	Side   Side
	Price  float64
	Size   int64
}

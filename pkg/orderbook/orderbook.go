package orderbook

// OrderBook tracks resting bid and offer orders for a single instrument.
// Orders are indexed by price, FIFO within a price, with a sorted level set
// per side (bids descending, offers ascending) and an incrementally
// maintained size total per price. A single cross-side id index gives O(1)
// cancel and resize.
//
// The book stores resting orders only; it never matches crossing orders.
// It is not internally synchronized: callers serialize access, either with
// one lock around the instance or by owning it from a single goroutine.
// BookManager provides the locked composition.
type OrderBook struct {
	symbol string

	bids   *bookSide
	offers *bookSide

	ordersByID map[int64]*Order
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol:     symbol,
		bids:       newBookSide(func(a, b float64) bool { return a > b }),
		offers:     newBookSide(func(a, b float64) bool { return a < b }),
		ordersByID: make(map[int64]*Order),
	}
}

func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// side resolves the two-valued token to its index set once; everything else
// is side-agnostic.
func (ob *OrderBook) side(s Side) (*bookSide, error) {
	switch s {
	case Bid:
		return ob.bids, nil
	case Offer:
		return ob.offers, nil
	}
	return nil, ErrInvalidSide
}

// Add inserts a fully formed order into its side of the book. The side is
// validated before any index is touched. An id already resting is rejected
// with ErrDuplicateOrderID: an order belongs to exactly one price bucket at
// a time, and silently re-adding would corrupt that.
func (ob *OrderBook) Add(o *Order) error {
	bs, err := ob.side(o.Side)
	if err != nil {
		return err
	}
	if _, ok := ob.ordersByID[o.ID]; ok {
		return ErrDuplicateOrderID
	}

	bs.add(o)
	ob.ordersByID[o.ID] = o
	return nil
}

// RemoveByID cancels a resting order. An id that is not resting returns
// false rather than an error: cancelling an already-gone order is a normal
// race in trading flows, not a caller bug.
func (ob *OrderBook) RemoveByID(id int64) bool {
	o, ok := ob.ordersByID[id]
	if !ok {
		return false
	}

	bs, _ := ob.side(o.Side) // side was validated on Add
	bs.remove(o)
	delete(ob.ordersByID, id)
	return true
}

// ChangeSize replaces the remaining quantity of a resting order in place.
// Queue position is preserved, and the per-price size total is adjusted in
// the same step so the aggregate never drifts from the bucket contents.
func (ob *OrderBook) ChangeSize(id int64, newSize int64) error {
	o, ok := ob.ordersByID[id]
	if !ok {
		return ErrUnknownOrderID
	}

	bs, _ := ob.side(o.Side)
	bs.totalSize[o.Price] += newSize - o.Size
	o.Size = newSize
	return nil
}

// PriceAtLevel returns the price at the 1-based rank on a side. Rank 1 is
// the best price: highest bid or lowest offer.
func (ob *OrderBook) PriceAtLevel(side Side, level int) (float64, error) {
	bs, err := ob.side(side)
	if err != nil {
		return 0, err
	}
	return bs.priceAtLevel(level)
}

// TotalSizeAtLevel returns the summed size of all orders at the price
// occupying the given rank.
func (ob *OrderBook) TotalSizeAtLevel(side Side, level int) (int64, error) {
	bs, err := ob.side(side)
	if err != nil {
		return 0, err
	}
	price, err := bs.priceAtLevel(level)
	if err != nil {
		return 0, err
	}
	return bs.totalSize[price], nil
}

// OrdersBySide returns every resting order on one side in price-time
// priority: best level first, arrival order within a level.
func (ob *OrderBook) OrdersBySide(side Side) ([]*Order, error) {
	bs, err := ob.side(side)
	if err != nil {
		return nil, err
	}

	orders := make([]*Order, 0, len(ob.ordersByID))
	bs.walk(func(o *Order) bool {
		orders = append(orders, o)
		return true
	})
	return orders, nil
}

// Get returns a copy of the resting order with the given id. The copy keeps
// callers from mutating indexed state behind the book's back.
func (ob *OrderBook) Get(id int64) (Order, bool) {
	o, ok := ob.ordersByID[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// BestPrice returns the level-1 price, or false on an empty side.
func (ob *OrderBook) BestPrice(side Side) (float64, bool) {
	bs, err := ob.side(side)
	if err != nil || bs.levels() == 0 {
		return 0, false
	}
	price, _ := bs.priceAtLevel(1)
	return price, true
}

// Levels reports the number of distinct occupied prices on a side.
func (ob *OrderBook) Levels(side Side) int {
	bs, err := ob.side(side)
	if err != nil {
		return 0
	}
	return bs.levels()
}

// Len reports the total number of resting orders across both sides.
func (ob *OrderBook) Len() int {
	return len(ob.ordersByID)
}

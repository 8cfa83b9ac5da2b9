package orderbook

// PriceLevel aggregates one occupied price on one side.
type PriceLevel struct {
	Price  float64 `json:"price"`
	Size   int64   `json:"size"`
	Orders int     `json:"orders"`
}

// DepthSnapshot is the depth-of-book view: up to maxLevels levels per side,
// best first. It is a copy; mutating the book afterwards does not change a
// snapshot already taken.
type DepthSnapshot struct {
	Symbol string       `json:"symbol"`
	Bids   []PriceLevel `json:"bids"`
	Offers []PriceLevel `json:"offers"`
}

// Depth builds a snapshot of the top maxLevels levels per side. A
// non-positive maxLevels includes every level.
func (ob *OrderBook) Depth(maxLevels int) DepthSnapshot {
	return DepthSnapshot{
		Symbol: ob.symbol,
		Bids:   ob.bids.depth(maxLevels),
		Offers: ob.offers.depth(maxLevels),
	}
}

func (s *bookSide) depth(maxLevels int) []PriceLevel {
	n := s.priceLevels.Len()
	if maxLevels > 0 && maxLevels < n {
		n = maxLevels
	}

	levels := make([]PriceLevel, 0, n)
	s.priceLevels.Scan(func(price float64) bool {
		if len(levels) == n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:  price,
			Size:   s.totalSize[price],
			Orders: s.ordersByPrice[price].Len(),
		})
		return true
	})
	return levels
}

package orderbook

import (
	"github.com/gammazero/deque"
	"github.com/tidwall/btree"
)

// bookSide holds the three per-side indices: FIFO price buckets, the sorted
// set of occupied price levels, and the per-price size totals. The btree
// comparator carries the side's ordering direction, so rank 1 is always the
// best price regardless of side.
type bookSide struct {
	ordersByPrice map[float64]*deque.Deque[*Order]
	priceLevels   *btree.BTreeG[float64]
	totalSize     map[float64]int64
}

func newBookSide(better func(a, b float64) bool) *bookSide {
	return &bookSide{
		ordersByPrice: make(map[float64]*deque.Deque[*Order]),
		priceLevels:   btree.NewBTreeG[float64](better),
		totalSize:     make(map[float64]int64),
	}
}

func (s *bookSide) add(o *Order) {
	q := s.ordersByPrice[o.Price]
	if q == nil {
		q = &deque.Deque[*Order]{}
		s.ordersByPrice[o.Price] = q
		s.priceLevels.Set(o.Price)
	}
	q.PushBack(o)
	s.totalSize[o.Price] += o.Size
}

// remove takes o out of its price bucket. An emptied bucket drops the whole
// level: bucket, level entry and size total go together, so a price is
// tracked if and only if at least one order rests at it.
func (s *bookSide) remove(o *Order) {
	q := s.ordersByPrice[o.Price]
	if q == nil {
		return
	}

	for i := 0; i < q.Len(); i++ {
		if q.At(i).ID == o.ID {
			q.Remove(i)
			break
		}
	}

	if q.Len() == 0 {
		delete(s.ordersByPrice, o.Price)
		delete(s.totalSize, o.Price)
		s.priceLevels.Delete(o.Price)
		return
	}

	s.totalSize[o.Price] -= o.Size
}

func (s *bookSide) priceAtLevel(level int) (float64, error) {
	if level < 1 || level > s.priceLevels.Len() {
		return 0, ErrInvalidLevel
	}
	price, _ := s.priceLevels.GetAt(level - 1)
	return price, nil
}

// walk visits every resting order, best price level first, arrival order
// within a level.
func (s *bookSide) walk(fn func(*Order) bool) {
	s.priceLevels.Scan(func(price float64) bool {
		q := s.ordersByPrice[price]
		for i := 0; i < q.Len(); i++ {
			if !fn(q.At(i)) {
				return false
			}
		}
		return true
	})
}

func (s *bookSide) levels() int {
	return s.priceLevels.Len()
}

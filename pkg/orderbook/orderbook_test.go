package orderbook

import (
	"errors"
	"testing"
)

func TestAddPriceTimePriority(t *testing.T) {
	ob := NewOrderBook("ABC")

	bids := []*Order{
		{ID: 1, Side: Bid, Price: 110.0, Size: 10},
		{ID: 2, Side: Bid, Price: 105.0, Size: 25},
		{ID: 3, Side: Bid, Price: 105.0, Size: 40},
	}
	offers := []*Order{
		{ID: 4, Side: Offer, Price: 100.0, Size: 10},
		{ID: 5, Side: Offer, Price: 100.0, Size: 100},
		{ID: 6, Side: Offer, Price: 105.0, Size: 250},
		{ID: 7, Side: Offer, Price: 105.0, Size: 300},
		{ID: 8, Side: Offer, Price: 103.0, Size: 200},
	}
	for _, o := range append(bids, offers...) {
		if err := ob.Add(o); err != nil {
			t.Fatalf("add order %d: %v", o.ID, err)
		}
	}

	gotBids, err := ob.OrdersBySide(Bid)
	if err != nil {
		t.Fatalf("OrdersBySide(Bid): %v", err)
	}
	gotOffers, err := ob.OrdersBySide(Offer)
	if err != nil {
		t.Fatalf("OrdersBySide(Offer): %v", err)
	}

	wantBids := []int64{1, 2, 3}
	wantOffers := []int64{4, 5, 8, 6, 7}

	if len(gotBids) != len(wantBids) {
		t.Fatalf("expected %d bids, got %d", len(wantBids), len(gotBids))
	}
	for i, id := range wantBids {
		if gotBids[i].ID != id {
			t.Errorf("bid[%d]: expected id %d, got %d", i, id, gotBids[i].ID)
		}
	}

	if len(gotOffers) != len(wantOffers) {
		t.Fatalf("expected %d offers, got %d", len(wantOffers), len(gotOffers))
	}
	for i, id := range wantOffers {
		if gotOffers[i].ID != id {
			t.Errorf("offer[%d]: expected id %d, got %d", i, id, gotOffers[i].ID)
		}
	}
}

func TestSidePartition(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Offer, Price: 101, Size: 10})
	_ = ob.Add(&Order{ID: 3, Side: Bid, Price: 99, Size: 10})

	bids, _ := ob.OrdersBySide(Bid)
	offers, _ := ob.OrdersBySide(Offer)

	if len(bids)+len(offers) != ob.Len() {
		t.Fatalf("sides do not partition the book: %d + %d != %d", len(bids), len(offers), ob.Len())
	}
	for _, o := range bids {
		if o.Side != Bid {
			t.Errorf("order %d on bid side has side %s", o.ID, o.Side)
		}
	}
	for _, o := range offers {
		if o.Side != Offer {
			t.Errorf("order %d on offer side has side %s", o.ID, o.Side)
		}
	}
}

func TestAddInvalidSide(t *testing.T) {
	ob := NewOrderBook("ABC")

	err := ob.Add(&Order{ID: 1, Side: Side("X"), Price: 100, Size: 10})
	if !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if ob.Len() != 0 {
		t.Fatalf("failed add must not mutate the book")
	}
}

func TestAddDuplicateID(t *testing.T) {
	ob := NewOrderBook("ABC")

	if err := ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := ob.Add(&Order{ID: 1, Side: Bid, Price: 105, Size: 20})
	if !errors.Is(err, ErrDuplicateOrderID) {
		t.Fatalf("expected ErrDuplicateOrderID, got %v", err)
	}

	// the original stays where it was
	bids, _ := ob.OrdersBySide(Bid)
	if len(bids) != 1 || bids[0].Price != 100 || bids[0].Size != 10 {
		t.Fatalf("rejected add must not disturb the resting order: %+v", bids)
	}
}

func TestRemoveByID(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100.0, Size: 10})

	if !ob.RemoveByID(1) {
		t.Fatalf("expected remove to report found")
	}
	bids, _ := ob.OrdersBySide(Bid)
	if len(bids) != 0 {
		t.Fatalf("expected empty bid side, got %d orders", len(bids))
	}
	if ob.RemoveByID(1) {
		t.Fatalf("second remove of the same id must report not found")
	}
	if ob.Levels(Bid) != 0 {
		t.Fatalf("vacated price must leave the level set")
	}
	if _, err := ob.PriceAtLevel(Bid, 1); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel on empty side, got %v", err)
	}
}

func TestRemovePartialBucketKeepsTotalConsistent(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 100, Size: 15})

	if !ob.RemoveByID(1) {
		t.Fatalf("expected remove to report found")
	}

	// the level survives with the remaining order, and the total reflects it
	total, err := ob.TotalSizeAtLevel(Bid, 1)
	if err != nil {
		t.Fatalf("TotalSizeAtLevel: %v", err)
	}
	if total != 15 {
		t.Fatalf("expected total 15 after partial removal, got %d", total)
	}
	bids, _ := ob.OrdersBySide(Bid)
	if len(bids) != 1 || bids[0].ID != 2 {
		t.Fatalf("expected order 2 to remain, got %+v", bids)
	}
}

func TestChangeSize(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100.0, Size: 10})

	if err := ob.ChangeSize(1, 20); err != nil {
		t.Fatalf("ChangeSize: %v", err)
	}

	bids, _ := ob.OrdersBySide(Bid)
	if bids[0].Size != 20 {
		t.Fatalf("expected size 20, got %d", bids[0].Size)
	}
}

func TestChangeSizeKeepsQueuePosition(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 100, Size: 10})

	if err := ob.ChangeSize(1, 50); err != nil {
		t.Fatalf("ChangeSize: %v", err)
	}

	bids, _ := ob.OrdersBySide(Bid)
	if bids[0].ID != 1 || bids[1].ID != 2 {
		t.Fatalf("resize must not change queue position, got [%d %d]", bids[0].ID, bids[1].ID)
	}
}

func TestChangeSizeAdjustsTotal(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 100, Size: 15})

	if err := ob.ChangeSize(1, 30); err != nil {
		t.Fatalf("ChangeSize: %v", err)
	}

	total, _ := ob.TotalSizeAtLevel(Bid, 1)
	if total != 45 {
		t.Fatalf("expected total 45 after resize, got %d", total)
	}
}

func TestChangeSizeUnknownID(t *testing.T) {
	ob := NewOrderBook("ABC")

	err := ob.ChangeSize(42, 10)
	if !errors.Is(err, ErrUnknownOrderID) {
		t.Fatalf("expected ErrUnknownOrderID, got %v", err)
	}
}

func TestPriceAtLevel(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100.0, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 105.0, Size: 10})

	price, err := ob.PriceAtLevel(Bid, 1)
	if err != nil {
		t.Fatalf("PriceAtLevel(Bid, 1): %v", err)
	}
	if price != 105.0 {
		t.Fatalf("expected best bid 105.0, got %v", price)
	}
	price, _ = ob.PriceAtLevel(Bid, 2)
	if price != 100.0 {
		t.Fatalf("expected level-2 bid 100.0, got %v", price)
	}

	_ = ob.Add(&Order{ID: 5, Side: Offer, Price: 100.0, Size: 100})
	_ = ob.Add(&Order{ID: 6, Side: Offer, Price: 105.0, Size: 250})
	_ = ob.Add(&Order{ID: 7, Side: Offer, Price: 105.0, Size: 300})
	_ = ob.Add(&Order{ID: 8, Side: Offer, Price: 103.0, Size: 200})

	price, err = ob.PriceAtLevel(Offer, 1)
	if err != nil {
		t.Fatalf("PriceAtLevel(Offer, 1): %v", err)
	}
	if price != 100.0 {
		t.Fatalf("expected best offer 100.0, got %v", price)
	}
}

func TestPriceAtLevelBounds(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100.0, Size: 10})

	if _, err := ob.PriceAtLevel(Bid, 0); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("level 0: expected ErrInvalidLevel, got %v", err)
	}
	if _, err := ob.PriceAtLevel(Bid, 2); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("level past depth: expected ErrInvalidLevel, got %v", err)
	}
	if _, err := ob.PriceAtLevel(Side("X"), 1); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("bad side: expected ErrInvalidSide, got %v", err)
	}
}

func TestTotalSizeAtLevel(t *testing.T) {
	ob := NewOrderBook("ABC")

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100.0, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 100.0, Size: 15})

	total, err := ob.TotalSizeAtLevel(Bid, 1)
	if err != nil {
		t.Fatalf("TotalSizeAtLevel: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}

	if _, err := ob.TotalSizeAtLevel(Bid, 3); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel propagated, got %v", err)
	}
}

func TestBestPrice(t *testing.T) {
	ob := NewOrderBook("ABC")

	if _, ok := ob.BestPrice(Bid); ok {
		t.Fatalf("empty side must report no best price")
	}

	_ = ob.Add(&Order{ID: 1, Side: Bid, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 2, Side: Bid, Price: 102, Size: 10})

	best, ok := ob.BestPrice(Bid)
	if !ok || best != 102 {
		t.Fatalf("expected best bid 102, got %v (%v)", best, ok)
	}
}

func TestArrivalOrderIndependentOfID(t *testing.T) {
	ob := NewOrderBook("ABC")

	// higher id arrives first at the same price
	_ = ob.Add(&Order{ID: 9, Side: Offer, Price: 100, Size: 10})
	_ = ob.Add(&Order{ID: 1, Side: Offer, Price: 100, Size: 10})

	offers, _ := ob.OrdersBySide(Offer)
	if offers[0].ID != 9 || offers[1].ID != 1 {
		t.Fatalf("expected arrival order [9 1], got [%d %d]", offers[0].ID, offers[1].ID)
	}
}

func TestHighVolumeAddRemove(t *testing.T) {
	ob := NewOrderBook("ABC")

	num := 10_000
	for i := 0; i < num; i++ {
		side := Bid
		price := 100.0 + float64(i%50)
		if i%2 == 0 {
			side = Offer
			price = 200.0 + float64(i%50)
		}
		if err := ob.Add(&Order{ID: int64(i), Side: side, Price: price, Size: 10}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	if ob.Len() != num {
		t.Fatalf("expected %d resting orders, got %d", num, ob.Len())
	}
	if ob.Levels(Bid) != 50 || ob.Levels(Offer) != 50 {
		t.Fatalf("expected 50 levels per side, got %d/%d", ob.Levels(Bid), ob.Levels(Offer))
	}

	for i := 0; i < num; i++ {
		if !ob.RemoveByID(int64(i)) {
			t.Fatalf("remove %d: not found", i)
		}
	}
	if ob.Len() != 0 || ob.Levels(Bid) != 0 || ob.Levels(Offer) != 0 {
		t.Fatalf("book not empty after removing everything")
	}
}

func BenchmarkAdd(b *testing.B) {
	ob := NewOrderBook("ABC")
	for i := 0; i < b.N; i++ {
		_ = ob.Add(&Order{ID: int64(i), Side: Bid, Price: 100.0 + float64(i%100), Size: 10})
	}
}

func BenchmarkAddRemove(b *testing.B) {
	ob := NewOrderBook("ABC")
	for i := 0; i < b.N; i++ {
		_ = ob.Add(&Order{ID: int64(i), Side: Offer, Price: 100.0 + float64(i%100), Size: 10})
		ob.RemoveByID(int64(i))
	}
}

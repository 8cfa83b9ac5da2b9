package orderbook

import (
	"sync"
	"testing"
)

func TestBookManagerRoutesBySymbol(t *testing.T) {
	m := NewBookManager(nil)

	if err := m.Add(&Order{ID: 1, Symbol: "ABC", Side: Bid, Price: 100, Size: 10}); err != nil {
		t.Fatalf("add ABC: %v", err)
	}
	if err := m.Add(&Order{ID: 1, Symbol: "XYZ", Side: Bid, Price: 50, Size: 5}); err != nil {
		t.Fatalf("add XYZ: %v", err)
	}

	price, err := m.PriceAtLevel("ABC", Bid, 1)
	if err != nil || price != 100 {
		t.Fatalf("ABC best bid: %v %v", price, err)
	}
	price, err = m.PriceAtLevel("XYZ", Bid, 1)
	if err != nil || price != 50 {
		t.Fatalf("XYZ best bid: %v %v", price, err)
	}
}

func TestBookManagerDepthListener(t *testing.T) {
	m := NewBookManager(&BookManagerConfig{DepthLevels: 5})

	var got []DepthSnapshot
	m.RegisterDepthListener(func(snap DepthSnapshot) {
		got = append(got, snap)
	})

	_ = m.Add(&Order{ID: 1, Symbol: "ABC", Side: Bid, Price: 100, Size: 10})
	if !m.Remove("ABC", 1) {
		t.Fatalf("expected remove to succeed")
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 depth updates, got %d", len(got))
	}
	if len(got[0].Bids) != 1 || got[0].Bids[0].Price != 100 {
		t.Errorf("first update: %+v", got[0])
	}
	if len(got[1].Bids) != 0 {
		t.Errorf("second update should show an empty bid side: %+v", got[1])
	}
}

func TestBookManagerNoListenerOnFailedMutation(t *testing.T) {
	m := NewBookManager(nil)

	fired := 0
	m.RegisterDepthListener(func(DepthSnapshot) { fired++ })

	if err := m.Add(&Order{ID: 1, Symbol: "ABC", Side: Side("X"), Price: 100, Size: 10}); err == nil {
		t.Fatalf("expected invalid side error")
	}
	if m.Remove("ABC", 42) {
		t.Fatalf("expected remove miss")
	}

	if fired != 0 {
		t.Fatalf("failed mutations must not publish depth, fired %d times", fired)
	}
}

func TestBookManagerConcurrentSymbols(t *testing.T) {
	m := NewBookManager(nil)

	symbols := []string{"AAA", "BBB", "CCC", "DDD"}
	perSymbol := 1_000

	var wg sync.WaitGroup
	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			for i := 0; i < perSymbol; i++ {
				_ = m.Add(&Order{ID: int64(i), Symbol: sym, Side: Offer, Price: 100 + float64(i%10), Size: 1})
			}
		}(sym)
	}
	wg.Wait()

	for _, sym := range symbols {
		orders, err := m.OrdersBySide(sym, Offer)
		if err != nil {
			t.Fatalf("%s: %v", sym, err)
		}
		if len(orders) != perSymbol {
			t.Fatalf("%s: expected %d orders, got %d", sym, perSymbol, len(orders))
		}
	}
}

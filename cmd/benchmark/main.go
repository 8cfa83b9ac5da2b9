package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/marketgrid/depthbook/pkg/orderbook"
)

const (
	numOrders  = 1_000_000
	minPrice   = 100.0
	maxPrice   = 200.0
	minSize    = 1
	maxSize    = 100
	cancelRate = 0.3
)

func randomOrder(id int64) *orderbook.Order {
	side := orderbook.Bid
	if rand.Intn(2) == 0 {
		side = orderbook.Offer
	}
	price := minPrice + rand.Float64()*(maxPrice-minPrice)
	size := int64(rand.Intn(maxSize-minSize+1) + minSize)

	return &orderbook.Order{
		ID:     id,
		Symbol: "ABC",
		Side:   side,
		Price:  float64(int(price*100)) / 100,
		Size:   size,
	}
}

func main() {
	books := orderbook.NewBookManager(&orderbook.BookManagerConfig{
		DepthLevels: 10,
	})

	snapshots := 0
	books.RegisterDepthListener(func(snap orderbook.DepthSnapshot) {
		snapshots++
	})

	resting := make([]int64, 0, numOrders)
	cancels := 0

	start := time.Now()
	for i := int64(1); i <= numOrders; i++ {
		order := randomOrder(i)
		if err := books.Add(order); err != nil {
			panic(err)
		}
		resting = append(resting, i)

		if rand.Float64() < cancelRate && len(resting) > 0 {
			victim := rand.Intn(len(resting))
			if books.Remove("ABC", resting[victim]) {
				cancels++
			}
			resting[victim] = resting[len(resting)-1]
			resting = resting[:len(resting)-1]
		}
	}
	elapsed := time.Since(start)

	depth := books.Depth("ABC", 5)

	fmt.Println("--------")
	fmt.Printf("Total Orders   : %d\n", numOrders)
	fmt.Printf("Total Cancels  : %d\n", cancels)
	fmt.Printf("Snapshots      : %d\n", snapshots)
	fmt.Printf("Bid Levels     : %d\n", len(depth.Bids))
	fmt.Printf("Offer Levels   : %d\n", len(depth.Offers))
	if len(depth.Bids) > 0 && len(depth.Offers) > 0 {
		fmt.Printf("Top of Book    : %.2f / %.2f\n", depth.Bids[0].Price, depth.Offers[0].Price)
	}
	fmt.Printf("Time Taken     : %s\n", elapsed)
	fmt.Printf("Ops/sec        : %.0f\n", float64(numOrders+cancels)/elapsed.Seconds())
}

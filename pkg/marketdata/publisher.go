// Package marketdata fans depth snapshots and book events out of the
// service: kafka topics for downstream consumers, redis for the latest
// per-symbol depth view.
package marketdata

import (
	"context"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/kafkautil"
	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// WireLevel renders one depth level for the wire. Prices travel as decimal
// strings so consumers never re-derive level keys from binary floats.
type WireLevel struct {
	Price  string `json:"price"`
	Size   int64  `json:"size"`
	Orders int    `json:"orders"`
}

type WireDepth struct {
	Symbol string      `json:"symbol"`
	Bids   []WireLevel `json:"bids"`
	Offers []WireLevel `json:"offers"`
}

func toWire(snap orderbook.DepthSnapshot) WireDepth {
	return WireDepth{
		Symbol: snap.Symbol,
		Bids:   toWireLevels(snap.Bids),
		Offers: toWireLevels(snap.Offers),
	}
}

func toWireLevels(levels []orderbook.PriceLevel) []WireLevel {
	out := make([]WireLevel, len(levels))
	for i, l := range levels {
		out[i] = WireLevel{
			Price:  decimal.NewFromFloat(l.Price).String(),
			Size:   l.Size,
			Orders: l.Orders,
		}
	}
	return out
}

type PublisherConfig struct {
	Brokers    []string
	DepthTopic string
	EventTopic string
}

// KafkaPublisher implements both bookd.DepthSink and bookd.EventSink over a
// single async producer. Messages are keyed by symbol so per-instrument
// ordering survives partitioning.
type KafkaPublisher struct {
	cfg      PublisherConfig
	producer *kafkautil.Producer
}

func NewKafkaPublisher(cfg PublisherConfig) *KafkaPublisher {
	return &KafkaPublisher{
		cfg:      cfg,
		producer: kafkautil.NewProducer(kafkautil.ProducerConfig{Brokers: cfg.Brokers}),
	}
}

func (p *KafkaPublisher) PublishDepth(ctx context.Context, snap orderbook.DepthSnapshot) error {
	return p.producer.PublishJSON(ctx, p.cfg.DepthTopic, snap.Symbol, toWire(snap))
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, ev *model.BookEvent) error {
	return p.producer.PublishJSON(ctx, p.cfg.EventTopic, ev.Symbol, ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

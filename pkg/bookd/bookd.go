package bookd

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/marketgrid/depthbook/pkg/bookd/journal"
	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/orderbook"
	"go.uber.org/zap"
)

// DepthSink receives the refreshed depth view after every book mutation.
type DepthSink interface {
	PublishDepth(ctx context.Context, snap orderbook.DepthSnapshot) error
}

// EventSink receives journal events for downstream persistence.
type EventSink interface {
	PublishEvent(ctx context.Context, ev *model.BookEvent) error
}

type ServiceConfig struct {
	// DepthLevels bounds published snapshots, 0 = full book.
	DepthLevels int
}

// Service owns the books and drives every mutation through the same path:
// apply to the book, append to the journal, report to the gateway, publish
// depth. Each command produces exactly one report.
type Service struct {
	cfg     *ServiceConfig
	gateway Gateway
	books   *orderbook.BookManager
	journal journal.Journal

	depthSinks []DepthSink
	eventSinks []EventSink

	nextOrderID atomic.Int64
}

func NewService(gateway Gateway, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	s := &Service{
		cfg:     cfg,
		gateway: gateway,
		journal: journal.NewInMemoryJournal(),
	}
	s.books = orderbook.NewBookManager(&orderbook.BookManagerConfig{
		DepthLevels: cfg.DepthLevels,
	})
	s.books.RegisterDepthListener(s.onDepth)

	return s
}

func (s *Service) Start(ctx context.Context) error {
	return s.gateway.Start(ctx)
}

// AddDepthSink and AddEventSink register sinks before Start; they are not
// safe to call once commands are flowing.
func (s *Service) AddDepthSink(sink DepthSink) {
	s.depthSinks = append(s.depthSinks, sink)
}

func (s *Service) AddEventSink(sink EventSink) {
	s.eventSinks = append(s.eventSinks, sink)
}

func (s *Service) AddOrder(ctx context.Context, cmd *model.AddOrder) error {
	now := time.Now()

	if _, ok := s.journal.OrderID(cmd.ClOrdID); ok {
		s.reject(ctx, cmd, ErrDuplicateRequest.Error(), now)
		return ErrDuplicateRequest
	}

	order := &orderbook.Order{
		ID:     s.nextOrderID.Add(1),
		Symbol: cmd.Symbol,
		Side:   cmd.Side,
		Price:  cmd.Price.InexactFloat64(),
		Size:   cmd.Size.IntPart(),
	}
	if err := s.books.Add(order); err != nil {
		s.reject(ctx, cmd, err.Error(), now)
		return err
	}

	ev := model.NewBookEventAdd(order, cmd.ClOrdID, now)
	s.journal.Append(ev)
	s.publishEvent(ctx, ev)

	s.gateway.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      cmd.ClOrdID,
		OrderID:      order.ID,
		Account:      cmd.Account,
		Symbol:       order.Symbol,
		Side:         order.Side,
		Price:        order.Price,
		Size:         order.Size,
		Status:       model.StatusResting,
		TransactTime: now,
	})
	return nil
}

func (s *Service) CancelOrder(ctx context.Context, cmd *model.CancelOrder) error {
	now := time.Now()

	orderID, ok := s.journal.OrderID(cmd.OrigClOrdID)
	if !ok {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, ErrUnknownRequest.Error(), now)
		return ErrUnknownRequest
	}

	// A miss here is a normal race (already cancelled), not an error: report
	// it back without failing the command.
	if !s.books.Remove(cmd.Symbol, orderID) {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, "order not resting", now)
		return nil
	}

	ev := model.NewBookEventCancel(orderID, cmd.Symbol, cmd.ClOrdID, cmd.OrigClOrdID, now)
	s.journal.Append(ev)
	s.publishEvent(ctx, ev)

	s.gateway.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      cmd.ClOrdID,
		OrigClOrdID:  cmd.OrigClOrdID,
		OrderID:      orderID,
		Symbol:       cmd.Symbol,
		Status:       model.StatusCanceled,
		TransactTime: now,
	})
	return nil
}

func (s *Service) ResizeOrder(ctx context.Context, cmd *model.ResizeOrder) error {
	now := time.Now()

	orderID, ok := s.journal.OrderID(cmd.OrigClOrdID)
	if !ok {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, ErrUnknownRequest.Error(), now)
		return ErrUnknownRequest
	}

	resting, ok := s.books.Lookup(cmd.Symbol, orderID)
	if !ok {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, "order not resting", now)
		return nil
	}

	// Resize keeps queue position; a price move would need a cancel+add and
	// is the client's call to make explicitly.
	if !cmd.NewPrice.IsZero() && cmd.NewPrice.InexactFloat64() != resting.Price {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, ErrPriceChangeRejected.Error(), now)
		return ErrPriceChangeRejected
	}

	newSize := cmd.NewSize.IntPart()
	if err := s.books.ChangeSize(cmd.Symbol, orderID, newSize); err != nil {
		s.rejectRef(ctx, cmd.ClOrdID, cmd.OrigClOrdID, cmd.Symbol, err.Error(), now)
		return err
	}

	ev := model.NewBookEventResize(orderID, cmd.Symbol, cmd.ClOrdID, cmd.OrigClOrdID, newSize, now)
	s.journal.Append(ev)
	s.publishEvent(ctx, ev)

	s.gateway.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      cmd.ClOrdID,
		OrigClOrdID:  cmd.OrigClOrdID,
		OrderID:      orderID,
		Symbol:       cmd.Symbol,
		Side:         resting.Side,
		Price:        resting.Price,
		Size:         newSize,
		Status:       model.StatusResized,
		TransactTime: now,
	})
	return nil
}

// ---- queries ----

func (s *Service) Depth(symbol string, maxLevels int) orderbook.DepthSnapshot {
	return s.books.Depth(symbol, maxLevels)
}

func (s *Service) PriceAtLevel(symbol string, side orderbook.Side, level int) (float64, error) {
	return s.books.PriceAtLevel(symbol, side, level)
}

func (s *Service) TotalSizeAtLevel(symbol string, side orderbook.Side, level int) (int64, error) {
	return s.books.TotalSizeAtLevel(symbol, side, level)
}

func (s *Service) OrdersBySide(symbol string, side orderbook.Side) ([]*orderbook.Order, error) {
	return s.books.OrdersBySide(symbol, side)
}

func (s *Service) History(orderID int64) []*model.BookEvent {
	return s.journal.History(orderID)
}

// ---- internals ----

func (s *Service) onDepth(snap orderbook.DepthSnapshot) {
	ctx := context.Background()
	for _, sink := range s.depthSinks {
		if err := sink.PublishDepth(ctx, snap); err != nil {
			zap.S().Warnw("publish depth failed", "symbol", snap.Symbol, "err", err)
		}
	}
}

func (s *Service) publishEvent(ctx context.Context, ev *model.BookEvent) {
	for _, sink := range s.eventSinks {
		if err := sink.PublishEvent(ctx, ev); err != nil {
			zap.S().Warnw("publish event failed", "event_id", ev.EventID, "err", err)
		}
	}
}

func (s *Service) reject(ctx context.Context, cmd *model.AddOrder, text string, now time.Time) {
	s.gateway.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      cmd.ClOrdID,
		Account:      cmd.Account,
		Symbol:       cmd.Symbol,
		Side:         cmd.Side,
		Status:       model.StatusRejected,
		Text:         text,
		TransactTime: now,
	})
}

func (s *Service) rejectRef(ctx context.Context, clOrdID, origClOrdID, symbol, text string, now time.Time) {
	s.gateway.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      clOrdID,
		OrigClOrdID:  origClOrdID,
		Symbol:       symbol,
		Status:       model.StatusRejected,
		Text:         text,
		TransactTime: now,
	})
}

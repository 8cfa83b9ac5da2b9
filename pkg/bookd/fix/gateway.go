package fixgateway

import (
	"context"
	"sync"
	"time"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

// bookService is the slice of the service the gateway drives.
type bookService interface {
	AddOrder(ctx context.Context, cmd *model.AddOrder) error
	CancelOrder(ctx context.Context, cmd *model.CancelOrder) error
	ResizeOrder(ctx context.Context, cmd *model.ResizeOrder) error
}

// Gateway accepts FIX 4.4 order flow and translates it into book commands.
// Only limit orders can rest in a book, so market orders are rejected at
// the door, as are replaces that move the price.
type Gateway struct {
	cfg     *GatewayConfig
	app     *Application
	service bookService

	sessionMapping sync.Map // ClOrdID -> *quickfix.SessionID
}

type GatewayConfig struct {
	ConfigFilepath string
}

func NewGateway(cfg *GatewayConfig) *Gateway {
	return &Gateway{
		cfg: cfg,
	}
}

func (g *Gateway) AttachService(s bookService) {
	g.service = s
}

func (g *Gateway) Start(ctx context.Context) error {
	app, err := startApp(g.cfg.ConfigFilepath, g)
	if err != nil {
		zap.S().Errorw("start fix acceptor failed", "err", err)
		return err
	}
	g.app = app
	return nil
}

func (g *Gateway) Stop() {
	if g.app != nil {
		stopApp(g.app)
	}
}

var sideMapping = map[enum.Side]orderbook.Side{
	enum.Side_BUY:  orderbook.Bid,
	enum.Side_SELL: orderbook.Offer,
}

func (g *Gateway) AddOrder(ctx context.Context, req *NewOrderSingle) {
	g.trackSession(req.ClOrdID, req.SessionID)

	if req.OrdType != enum.OrdType_LIMIT {
		g.rejectRequest(ctx, req.ClOrdID, "", req.Symbol, "only limit orders rest in the book")
		return
	}

	side, ok := sideMapping[req.Side]
	if !ok {
		g.rejectRequest(ctx, req.ClOrdID, "", req.Symbol, "unsupported side")
		return
	}

	_ = g.service.AddOrder(ctx, &model.AddOrder{
		ClOrdID:      req.ClOrdID,
		Account:      req.Account,
		Symbol:       req.Symbol,
		Side:         side,
		Price:        req.Price,
		Size:         req.OrderQty,
		TransactTime: req.TransactTime,
	})
}

func (g *Gateway) CancelOrder(ctx context.Context, req *OrderCancelRequest) {
	g.trackSession(req.ClOrdID, req.SessionID)

	_ = g.service.CancelOrder(ctx, &model.CancelOrder{
		ClOrdID:      req.ClOrdID,
		OrigClOrdID:  req.OrigClOrdID,
		Symbol:       req.Symbol,
		TransactTime: req.TransactTime,
	})
}

func (g *Gateway) ResizeOrder(ctx context.Context, req *OrderCancelReplaceRequest) {
	g.trackSession(req.ClOrdID, req.SessionID)

	_ = g.service.ResizeOrder(ctx, &model.ResizeOrder{
		ClOrdID:      req.ClOrdID,
		OrigClOrdID:  req.OrigClOrdID,
		Symbol:       req.Symbol,
		NewPrice:     req.Price,
		NewSize:      req.OrderQty,
		TransactTime: req.TransactTime,
	})
}

// OnOrderReport sends an ExecutionReport back on the session that issued
// the request.
func (g *Gateway) OnOrderReport(ctx context.Context, report *model.OrderReport) {
	sessionID, ok := g.sessionByClOrdID(report.ClOrdID)
	if !ok {
		zap.S().Warnw("no session for report", "cl_ord_id", report.ClOrdID, "order_id", report.OrderID)
		return
	}

	reportBK := *report
	go func() {
		msg := reportToExecutionReport(&reportBK)
		if err := quickfix.SendToTarget(msg, *sessionID); err != nil {
			zap.S().Warnw("send execution report failed", "cl_ord_id", reportBK.ClOrdID, "err", err)
		}
	}()
}

func (g *Gateway) rejectRequest(ctx context.Context, clOrdID, origClOrdID, symbol, text string) {
	g.OnOrderReport(ctx, &model.OrderReport{
		ClOrdID:      clOrdID,
		OrigClOrdID:  origClOrdID,
		Symbol:       symbol,
		Status:       model.StatusRejected,
		Text:         text,
		TransactTime: time.Now(),
	})
}

func (g *Gateway) trackSession(clOrdID string, sessionID *quickfix.SessionID) {
	g.sessionMapping.Store(clOrdID, sessionID)
}

func (g *Gateway) sessionByClOrdID(clOrdID string) (*quickfix.SessionID, bool) {
	if v, ok := g.sessionMapping.Load(clOrdID); ok {
		return v.(*quickfix.SessionID), true
	}
	return nil, false
}

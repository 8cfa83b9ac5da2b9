package fixgateway

import (
	"strconv"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

var statusToExecType = map[model.ReportStatus]enum.ExecType{
	model.StatusResting:  enum.ExecType_NEW,
	model.StatusCanceled: enum.ExecType_CANCELED,
	model.StatusResized:  enum.ExecType_REPLACED,
	model.StatusRejected: enum.ExecType_REJECTED,
}

var statusToOrdStatus = map[model.ReportStatus]enum.OrdStatus{
	model.StatusResting:  enum.OrdStatus_NEW,
	model.StatusCanceled: enum.OrdStatus_CANCELED,
	model.StatusResized:  enum.OrdStatus_REPLACED,
	model.StatusRejected: enum.OrdStatus_REJECTED,
}

var reportSideMapping = map[orderbook.Side]enum.Side{
	orderbook.Bid:   enum.Side_BUY,
	orderbook.Offer: enum.Side_SELL,
}

func reportSide(s orderbook.Side) enum.Side {
	if v, ok := reportSideMapping[s]; ok {
		return v
	}
	return enum.Side_UNDISCLOSED
}

// leavesQty is the resting size: zero once the order is cancelled or
// rejected.
func leavesQty(report *model.OrderReport) decimal.Decimal {
	switch report.Status {
	case model.StatusCanceled, model.StatusRejected:
		return decimal.Zero
	}
	return decimal.NewFromInt(report.Size)
}

func reportToExecutionReport(report *model.OrderReport) quickfix.Messagable {
	execReportMsg := executionreport.New(
		field.NewOrderID(strconv.FormatInt(report.OrderID, 10)),
		field.NewExecID(model.NewEventID(report.OrderID, model.EventAction(report.Status), report.TransactTime)),
		field.NewExecType(statusToExecType[report.Status]),
		field.NewOrdStatus(statusToOrdStatus[report.Status]),
		field.NewSide(reportSide(report.Side)),
		field.NewLeavesQty(leavesQty(report), 0),
		field.NewCumQty(decimal.Zero, 0),
		field.NewAvgPx(decimal.Zero, 2),
	)

	execReportMsg.SetClOrdID(report.ClOrdID)
	if report.OrigClOrdID != "" {
		execReportMsg.SetOrigClOrdID(report.OrigClOrdID)
	}
	execReportMsg.SetSymbol(report.Symbol)
	if report.Account != "" {
		execReportMsg.SetAccount(report.Account)
	}
	execReportMsg.SetOrderQty(decimal.NewFromInt(report.Size), 0)
	execReportMsg.SetPrice(decimal.NewFromFloat(report.Price), 2)
	execReportMsg.SetTransactTime(report.TransactTime)
	if report.Text != "" {
		execReportMsg.SetText(report.Text)
	}

	return execReportMsg
}

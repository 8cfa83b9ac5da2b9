package fixgateway

import (
	"testing"
	"time"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
)

var testReport = &model.OrderReport{
	ClOrdID:      "C2",
	OrigClOrdID:  "C1",
	OrderID:      42,
	Account:      "ACC1",
	Symbol:       "ABC",
	Side:         orderbook.Bid,
	Price:        100.5,
	Size:         25,
	Status:       model.StatusResized,
	TransactTime: time.Now(),
}

func assertBodyField(t *testing.T, msg *quickfix.Message, tg quickfix.Tag, want string) {
	t.Helper()
	got, err := msg.Body.GetString(tg)
	if err != nil {
		t.Fatalf("get tag %d: %v", tg, err)
	}
	if got != want {
		t.Errorf("tag %d: expected %q, got %q", tg, want, got)
	}
}

func TestReportToExecutionReport(t *testing.T) {
	msg := reportToExecutionReport(testReport).ToMessage()

	assertBodyField(t, msg, tag.ClOrdID, "C2")
	assertBodyField(t, msg, tag.OrigClOrdID, "C1")
	assertBodyField(t, msg, tag.OrderID, "42")
	assertBodyField(t, msg, tag.Symbol, "ABC")
	assertBodyField(t, msg, tag.Side, string(enum.Side_BUY))
	assertBodyField(t, msg, tag.ExecType, string(enum.ExecType_REPLACED))
	assertBodyField(t, msg, tag.OrdStatus, string(enum.OrdStatus_REPLACED))
	assertBodyField(t, msg, tag.LeavesQty, "25")
	assertBodyField(t, msg, tag.Price, "100.50")
}

func TestRejectReportHasZeroLeaves(t *testing.T) {
	report := *testReport
	report.Status = model.StatusRejected
	report.Text = "price change not supported on resize"

	msg := reportToExecutionReport(&report).ToMessage()

	assertBodyField(t, msg, tag.ExecType, string(enum.ExecType_REJECTED))
	assertBodyField(t, msg, tag.LeavesQty, "0")
	assertBodyField(t, msg, tag.Text, "price change not supported on resize")
}

func TestCancelReportHasZeroLeaves(t *testing.T) {
	report := *testReport
	report.Status = model.StatusCanceled

	msg := reportToExecutionReport(&report).ToMessage()

	assertBodyField(t, msg, tag.OrdStatus, string(enum.OrdStatus_CANCELED))
	assertBodyField(t, msg, tag.LeavesQty, "0")
}

package worker

import (
	"context"
	"encoding/json"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"github.com/marketgrid/depthbook/pkg/bookd/repo"
	"github.com/marketgrid/depthbook/pkg/kafkautil"
	"go.uber.org/zap"
)

// Worker drains the book-event topic into the SQL journal. It runs apart
// from the serving path so journal persistence never adds latency to order
// flow.
type Worker struct {
	events repo.IBookEvent
}

func NewWorker(r repo.IRepo) *Worker {
	return &Worker{
		events: r.BookEvent(),
	}
}

func (w *Worker) Run(ctx context.Context, cg *kafkautil.ConsumerGroup) error {
	return cg.Run(ctx, func(ctx context.Context, msg kafkautil.Message) error {
		var ev model.BookEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.S().Warnw("skip malformed book event", "offset", msg.Offset, "err", err)
			return nil
		}

		_, err := w.events.Create(ctx, &ev)
		return err
	})
}

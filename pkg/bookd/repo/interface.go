package repo

import (
	"context"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
)

type IBookEvent interface {
	Create(ctx context.Context, record *model.BookEvent) (*model.BookEvent, error)
	BulkCreate(ctx context.Context, records []*model.BookEvent) ([]*model.BookEvent, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]*model.BookEvent, error)
}

package repo

import (
	"context"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
	"gorm.io/gorm"
)

type BookEventSQLRepo struct {
	db *gorm.DB
}

func NewBookEventSQLRepo(db *gorm.DB) *BookEventSQLRepo {
	return &BookEventSQLRepo{
		db: db,
	}
}

func (r *BookEventSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *BookEventSQLRepo) Create(ctx context.Context, record *model.BookEvent) (*model.BookEvent, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *BookEventSQLRepo) BulkCreate(ctx context.Context, records []*model.BookEvent) ([]*model.BookEvent, error) {
	return records, r.dbWithContext(ctx).Create(records).Error
}

func (r *BookEventSQLRepo) ListByOrderID(ctx context.Context, orderID int64) ([]*model.BookEvent, error) {
	var records []*model.BookEvent
	err := r.dbWithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp asc").
		Find(&records).Error
	return records, err
}

package repo

import (
	"gorm.io/gorm"
)

type IRepo interface {
	BookEvent() IBookEvent
}

type Repo struct {
	journalDB *gorm.DB
}

func NewRepo(journalDB *gorm.DB) IRepo {
	return &Repo{
		journalDB: journalDB,
	}
}

func (r *Repo) BookEvent() IBookEvent {
	return NewBookEventSQLRepo(r.journalDB)
}

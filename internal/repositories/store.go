package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the entity repositories over one gorm handle. A Store
// passed to a Transaction callback is bound to that transaction.
type Store struct {
	db     *gorm.DB
	Tasks  *TaskRepository
	Offers *OfferRepository
	Skills *SkillRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		Tasks:  NewTaskRepository(db),
		Offers: NewOfferRepository(db),
		Skills: NewSkillRepository(db),
	}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

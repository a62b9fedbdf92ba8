package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/ledger"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *LedgerRepository) GetByID(ctx context.Context, id int64) (*ledger.Entry, error) {
	var entry ledger.Entry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListForUser loads every entry the user is a party to. Membership in
// shared_with lives inside a JSON column, so entries are filtered here
// rather than in SQL.
func (r *LedgerRepository) ListForUser(ctx context.Context, userID int64) ([]*ledger.Entry, error) {
	var all []*ledger.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&all).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(all))
	for _, e := range all {
		if e.InvolvesUser(userID) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// UpdateSettlement reloads the entry, applies the mutation, and writes the
// settlement columns back under an optimistic guard. Membership lives in a
// JSON text column, so the write compares the previously read settled_by
// value and retries when a concurrent settlement landed in between.
func (r *LedgerRepository) UpdateSettlement(ctx context.Context, id int64, apply func(*ledger.Entry) error) (*ledger.Entry, error) {
	for {
		entry, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		prev, err := entry.SettledBy.Value()
		if err != nil {
			return nil, err
		}

		if err := apply(entry); err != nil {
			return nil, err
		}

		res := r.db.WithContext(ctx).
			Model(&ledger.Entry{}).
			Where("id = ? AND settled_by = ?", id, prev).
			Updates(map[string]interface{}{
				"settled_by": entry.SettledBy,
				"is_settled": entry.IsSettled,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return entry, nil
		}
	}
}

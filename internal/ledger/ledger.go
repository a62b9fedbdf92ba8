package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

// Default expense categories. The category module owns the active roster
// and validates entry categories against it.
const (
	CategoryFood          = "food"
	CategoryUtilities     = "utilities"
	CategoryEntertainment = "entertainment"
	CategoryGroceries     = "groceries"
	CategoryOther         = "other"
)

const (
	SplitTypeEqual  = "equal"
	SplitTypeCustom = "custom"
)

// SplitTolerance is how far custom shares may drift from the entry amount
// before creation is rejected.
var SplitTolerance = decimal.NewFromFloat(0.01)

// Entry is one shared cost: who paid, who owes, how the amount splits, and
// which obligors have settled.
type Entry struct {
	ID           int64                `json:"id" gorm:"primaryKey"`
	Description  string               `json:"description" gorm:"not null"`
	Amount       decimal.Decimal      `json:"amount" gorm:"type:numeric(14,2);not null"`
	Category     string               `json:"category" gorm:"not null"`
	PaidBy       int64                `json:"paid_by" gorm:"column:paid_by;not null;index"`
	SharedWith   datamodel.Int64Set   `json:"shared_with" gorm:"column:shared_with;type:text;not null"`
	SplitType    string               `json:"split_type" gorm:"column:split_type;default:equal"`
	CustomSplits datamodel.DecimalMap `json:"custom_splits,omitempty" gorm:"column:custom_splits;type:text"`
	SettledBy    datamodel.Int64Set   `json:"settled_by" gorm:"column:settled_by;type:text"`
	IsSettled    bool                 `json:"is_settled" gorm:"column:is_settled;default:false"`
	CreatedAt    time.Time            `json:"created_at"`
}

func (Entry) TableName() string {
	return "expense_entries"
}

// ShareOf returns the viewer's share of this entry. Equal splits divide the
// amount across all of SharedWith; custom splits read the explicit map,
// zero when absent.
func (e *Entry) ShareOf(userID int64) decimal.Decimal {
	if e.SplitType == SplitTypeCustom {
		if share, ok := e.CustomSplits[userID]; ok {
			return share
		}
		return decimal.Zero
	}
	if len(e.SharedWith) == 0 {
		return decimal.Zero
	}
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.SharedWith))))
}

// Obligors returns SharedWith without the payer: the users whose
// settlements an entry waits on.
func (e *Entry) Obligors() datamodel.Int64Set {
	obligors := make(datamodel.Int64Set, 0, len(e.SharedWith))
	for _, id := range e.SharedWith {
		if id != e.PaidBy {
			obligors = append(obligors, id)
		}
	}
	return obligors
}

// RecomputeSettled derives IsSettled from the settlement set: the entry is
// settled once every obligor other than the payer has confirmed.
func (e *Entry) RecomputeSettled() {
	e.IsSettled = e.SettledBy.ContainsAll(e.Obligors())
}

// InvolvesUser reports whether the user is a party to the entry.
func (e *Entry) InvolvesUser(userID int64) bool {
	return e.PaidBy == userID || e.SharedWith.Contains(userID)
}

var (
	ErrEntryNotFound = errors.NewNotFoundError("expense entry not found", errors.ErrCodeEntryNotFound)
	ErrNotObligor    = errors.NewForbiddenError("only an obligor can settle this entry", errors.ErrCodeNotObligor)
	ErrPayerSettle   = errors.NewForbiddenError("the payer has nothing to settle", errors.ErrCodeNotObligor)
)

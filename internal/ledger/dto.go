package ledger

import (
	"github.com/shopspring/decimal"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/common/validation"
	"github.com/hostelhub/server/internal/core/datamodel"
)

type CreateEntryDTO struct {
	Description  string               `json:"description"`
	Amount       decimal.Decimal      `json:"amount"`
	Category     string               `json:"category"`
	SharedWith   datamodel.Int64Set   `json:"shared_with"`
	SplitType    string               `json:"split_type"`
	CustomSplits datamodel.DecimalMap `json:"custom_splits"`
}

func (d *CreateEntryDTO) Validate() error {
	v := validation.NewValidator()

	v.Field("description", d.Description).
		Required().
		MaxLength(500)

	v.Field("amount", d.Amount).
		Positive(errors.ErrCodeInvalidAmount)

	v.Field("category", d.Category).
		Required()

	if d.SplitType != "" {
		v.Field("split_type", d.SplitType).
			OneOf([]string{SplitTypeEqual, SplitTypeCustom}, errors.ErrCodeInvalidSplit)
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return d.validateSplits()
}

// validateSplits enforces the custom split contract: every split key must be
// a member of shared_with, and the shares must sum to the entry amount
// within SplitTolerance.
func (d *CreateEntryDTO) validateSplits() error {
	if d.SplitType != SplitTypeCustom {
		return nil
	}
	if len(d.CustomSplits) == 0 {
		return errors.NewValidationFieldError("custom_splits",
			"custom split requires at least one share", errors.ErrCodeInvalidSplit)
	}
	sum := decimal.Zero
	for userID, share := range d.CustomSplits {
		if !d.SharedWith.Contains(userID) {
			return errors.NewValidationFieldError("custom_splits",
				"split includes a user outside shared_with", errors.ErrCodeInvalidSplit)
		}
		if share.IsNegative() {
			return errors.NewValidationFieldError("custom_splits",
				"split shares cannot be negative", errors.ErrCodeInvalidSplit)
		}
		sum = sum.Add(share)
	}
	if sum.Sub(d.Amount).Abs().GreaterThan(SplitTolerance) {
		return errors.NewValidationFieldError("custom_splits",
			"split shares must sum to the entry amount", errors.ErrCodeInvalidSplit)
	}
	return nil
}

type BalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

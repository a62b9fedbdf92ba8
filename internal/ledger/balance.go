package ledger

import "github.com/shopspring/decimal"

// BalanceFor folds every entry the viewer is a party to into a single net
// figure. Positive means the hostel owes the viewer, negative means the
// viewer owes the hostel.
//
// The payer's credit is the amount minus their own share and never shrinks
// as obligors settle; an obligor's share stops counting against them the
// moment they settle. The fold is pure and order independent, so it can be
// re-run over the same entries at any time.
func BalanceFor(entries []*Entry, viewerID int64) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		share := e.ShareOf(viewerID)
		switch {
		case e.PaidBy == viewerID:
			balance = balance.Add(e.Amount.Sub(share))
		case e.SharedWith.Contains(viewerID) && !e.SettledBy.Contains(viewerID):
			balance = balance.Sub(share)
		}
	}
	return balance
}

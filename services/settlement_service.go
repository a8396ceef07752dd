package services

import (
	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/utils"
)

// SettlementService computes every derived financial view from a snapshot of
// group, receipt and item data. All methods are pure: they never mutate their
// inputs and always return a value, treating missing optional fields as
// "no tax" / "no consumers" / "unpaid". Unknown member ids are ignored rather
// than rejected so views stay usable after a member deletion.
type SettlementService struct{}

// NewSettlementService creates a new settlement service
func NewSettlementService() *SettlementService {
	return &SettlementService{}
}

// ItemSubtotal returns price times quantity for a single item
func (s *SettlementService) ItemSubtotal(item models.Item) float64 {
	return item.Price * float64(item.Quantity)
}

// ReceiptSubtotal returns the sum of item subtotals, 0 for an empty receipt
func (s *SettlementService) ReceiptSubtotal(receipt *models.Receipt) float64 {
	var subtotal float64
	for _, item := range receipt.Items {
		subtotal += s.ItemSubtotal(item)
	}
	return subtotal
}

// CalculateTaxes applies the receipt's tax rates to a subtotal. Rates are
// additive, not compounding; an unset rate stays nil in the breakdown so the
// caller can distinguish "no tax" from "zero tax". Rates are taken as given,
// range validation belongs to the boundary layer.
func (s *SettlementService) CalculateTaxes(subtotal float64, receipt *models.Receipt) models.TaxBreakdown {
	breakdown := models.TaxBreakdown{
		Subtotal: utils.Round(subtotal),
	}

	// Total sums the rounded components so the displayed figures reconcile
	total := breakdown.Subtotal
	if receipt.SST != nil {
		sst := utils.Round(subtotal * (*receipt.SST / 100))
		breakdown.SST = &sst
		total += sst
	}
	if receipt.ServiceCharge != nil {
		charge := utils.Round(subtotal * (*receipt.ServiceCharge / 100))
		breakdown.ServiceCharge = &charge
		total += charge
	}

	breakdown.Total = utils.Round(total)
	return breakdown
}

// ReceiptTotal returns the tax-adjusted grand total of a receipt
func (s *SettlementService) ReceiptTotal(receipt *models.Receipt) float64 {
	return s.CalculateTaxes(s.ReceiptSubtotal(receipt), receipt).Total
}

// applyRates adds the receipt's tax rates to an amount without rounding, so
// shares can be summed before the final 2-dp rounding.
func (s *SettlementService) applyRates(amount float64, receipt *models.Receipt) float64 {
	total := amount
	if receipt.SST != nil {
		total += amount * (*receipt.SST / 100)
	}
	if receipt.ServiceCharge != nil {
		total += amount * (*receipt.ServiceCharge / 100)
	}
	return total
}

// consumerShare returns one consumer's pre-tax share of an item, dividing
// it evenly among all its consumers, the owner included. On the owner's own
// receipt their share is absorbed rather than owed.
func (s *SettlementService) consumerShare(item models.Item) float64 {
	if len(item.UserIDs) == 0 {
		return 0
	}
	return s.ItemSubtotal(item) / float64(len(item.UserIDs))
}

// MemberConsumptionSubtotal returns the raw per-person consumption of a
// member across items, dividing each item evenly among all its consumers.
// Items with no consumers contribute nothing.
func (s *SettlementService) MemberConsumptionSubtotal(memberID string, items []models.Item) float64 {
	var total float64
	for _, item := range items {
		if utils.ContainsID(item.UserIDs, memberID) {
			total += s.consumerShare(item)
		}
	}
	return utils.Round(total)
}

// MemberOwedTotal returns how much a member still owes the receipt owner.
// The owner owes nothing on their own receipt; settled items contribute
// nothing; each remaining share is tax-adjusted the same way as the receipt
// subtotal.
func (s *SettlementService) MemberOwedTotal(memberID string, receipt *models.Receipt) float64 {
	if memberID == receipt.PaidTo {
		return 0
	}

	var total float64
	for _, item := range receipt.Items {
		if !utils.ContainsID(item.UserIDs, memberID) {
			continue
		}
		if utils.ContainsID(item.PaidByIDs, memberID) {
			continue
		}
		total += s.applyRates(s.consumerShare(item), receipt)
	}
	return utils.Round(total)
}

// MemberPaidTotal returns how much a member has paid toward a receipt. The
// owner is treated as having fronted the whole bill; everyone else has paid
// the tax-adjusted shares of the items they settled.
func (s *SettlementService) MemberPaidTotal(memberID string, receipt *models.Receipt) float64 {
	if memberID == receipt.PaidTo {
		return s.ReceiptTotal(receipt)
	}

	var total float64
	for _, item := range receipt.Items {
		if !utils.ContainsID(item.UserIDs, memberID) {
			continue
		}
		if !utils.ContainsID(item.PaidByIDs, memberID) {
			continue
		}
		total += s.applyRates(s.consumerShare(item), receipt)
	}
	return utils.Round(total)
}

// ReceiptPaidPercentage returns the item-count-weighted fraction of settled
// items, 0-100. Only items with at least one non-owner consumer count; an
// item is settled once every one of its non-owner consumers has paid.
func (s *SettlementService) ReceiptPaidPercentage(receipt *models.Receipt) float64 {
	eligible := 0
	settled := 0

	for _, item := range receipt.Items {
		hasNonOwner := false
		fullyPaid := true
		for _, id := range item.UserIDs {
			if id == receipt.PaidTo {
				continue
			}
			hasNonOwner = true
			if !utils.ContainsID(item.PaidByIDs, id) {
				fullyPaid = false
			}
		}
		if !hasNonOwner {
			continue
		}
		eligible++
		if fullyPaid {
			settled++
		}
	}

	if eligible == 0 {
		return 0
	}
	return utils.Round(float64(settled) / float64(eligible) * 100)
}

// GroupInsights aggregates totals across a group's receipts. Ties on the
// highest-value receipt go to the first occurrence in list order.
func (s *SettlementService) GroupInsights(receipts []*models.Receipt, members []models.Member) *models.GroupInsights {
	insights := &models.GroupInsights{
		ReceiptCount: len(receipts),
		MemberCount:  len(members),
	}

	var total float64
	for _, receipt := range receipts {
		receiptTotal := s.ReceiptTotal(receipt)
		total += receiptTotal
		if insights.HighestReceipt == nil || receiptTotal > insights.HighestTotal {
			insights.HighestReceipt = receipt
			insights.HighestTotal = receiptTotal
		}
	}
	insights.TotalAmount = utils.Round(total)

	return insights
}

// AggregateDebts groups all unsettled item shares by (consumer, owner) pair,
// producing the who-pays-whom view across receipts. Ids no longer in the
// member list are skipped on either side of the pair, so a receipt owned by
// a removed member produces no debts. Summing a consumer's debts equals
// their MemberOwedTotal summed across receipts with a known owner.
func (s *SettlementService) AggregateDebts(receipts []*models.Receipt, members []models.Member) []models.Debt {
	known := make(map[string]bool, len(members))
	for _, member := range members {
		known[member.ID] = true
	}

	type pair struct{ from, to string }
	totals := make(map[pair]float64)
	details := make(map[pair][]models.DebtItem)

	for _, receipt := range receipts {
		if !known[receipt.PaidTo] {
			continue
		}
		for _, item := range receipt.Items {
			for _, consumer := range item.UserIDs {
				if consumer == receipt.PaidTo || !known[consumer] {
					continue
				}
				if utils.ContainsID(item.PaidByIDs, consumer) {
					continue
				}

				share := s.applyRates(s.consumerShare(item), receipt)
				key := pair{from: consumer, to: receipt.PaidTo}
				totals[key] += share
				details[key] = append(details[key], models.DebtItem{
					ReceiptID:   receipt.ID,
					ReceiptName: receipt.Name,
					ItemName:    item.Name,
					Amount:      utils.Round(share),
				})
			}
		}
	}

	// Member list order keeps the output deterministic
	memberOrder := make(map[string]int, len(members))
	for i, member := range members {
		memberOrder[member.ID] = i
	}

	var debts []models.Debt
	for key, amount := range totals {
		debts = append(debts, models.Debt{
			FromMemberID: key.from,
			ToMemberID:   key.to,
			Amount:       utils.Round(amount),
			Items:        details[key],
		})
	}

	for i := 0; i < len(debts); i++ {
		for j := i + 1; j < len(debts); j++ {
			a, b := debts[i], debts[j]
			if memberOrder[b.FromMemberID] < memberOrder[a.FromMemberID] ||
				(b.FromMemberID == a.FromMemberID && memberOrder[b.ToMemberID] < memberOrder[a.ToMemberID]) {
				debts[i], debts[j] = debts[j], debts[i]
			}
		}
	}

	return debts
}

// MarkItemsPaid returns a new item list with the member added to the payer
// set of every item they consume, stamping newly settled items with a single
// strictly increasing timestamp. Items the member does not consume are
// untouched; marking twice is a no-op.
func (s *SettlementService) MarkItemsPaid(items []models.Item, memberID string) []models.Item {
	updated := copyItems(items)
	timestamp := utils.NextTimestamp()

	for i := range updated {
		if !utils.ContainsID(updated[i].UserIDs, memberID) {
			continue
		}
		if utils.ContainsID(updated[i].PaidByIDs, memberID) {
			continue
		}
		updated[i].PaidByIDs = append(updated[i].PaidByIDs, memberID)
		if updated[i].PaidTimestamps == nil {
			updated[i].PaidTimestamps = make(map[string]int64)
		}
		updated[i].PaidTimestamps[memberID] = timestamp
	}

	return updated
}

// MarkItemsUnpaid returns a new item list with the member removed from the
// payer set of every item they consume, clearing their payment timestamp.
func (s *SettlementService) MarkItemsUnpaid(items []models.Item, memberID string) []models.Item {
	updated := copyItems(items)

	for i := range updated {
		if !utils.ContainsID(updated[i].UserIDs, memberID) {
			continue
		}

		var remaining []string
		for _, id := range updated[i].PaidByIDs {
			if id != memberID {
				remaining = append(remaining, id)
			}
		}
		updated[i].PaidByIDs = remaining
		delete(updated[i].PaidTimestamps, memberID)
	}

	return updated
}

// BuildReceiptSummary assembles the full computed view of one receipt for
// the given member list.
func (s *SettlementService) BuildReceiptSummary(receipt *models.Receipt, members []models.Member) *models.ReceiptSummary {
	summary := &models.ReceiptSummary{
		Receipt:        receipt,
		Taxes:          s.CalculateTaxes(s.ReceiptSubtotal(receipt), receipt),
		PaidPercentage: s.ReceiptPaidPercentage(receipt),
	}

	for _, member := range members {
		summary.Members = append(summary.Members, models.MemberReceiptSummary{
			MemberID:    member.ID,
			MemberName:  member.Name,
			Consumption: s.MemberConsumptionSubtotal(member.ID, receipt.Items),
			Owed:        s.MemberOwedTotal(member.ID, receipt),
			Paid:        s.MemberPaidTotal(member.ID, receipt),
			IsOwner:     member.ID == receipt.PaidTo,
		})
	}

	return summary
}

// copyItems deep-copies an item list so transforms never alias the input
func copyItems(items []models.Item) []models.Item {
	copied := make([]models.Item, len(items))
	for i, item := range items {
		copied[i] = item
		if item.UserIDs != nil {
			copied[i].UserIDs = append([]string(nil), item.UserIDs...)
		}
		if item.PaidByIDs != nil {
			copied[i].PaidByIDs = append([]string(nil), item.PaidByIDs...)
		}
		if item.PaidTimestamps != nil {
			copied[i].PaidTimestamps = make(map[string]int64, len(item.PaidTimestamps))
			for id, ts := range item.PaidTimestamps {
				copied[i].PaidTimestamps[id] = ts
			}
		}
	}
	return copied
}

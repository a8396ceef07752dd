package services

import (
	"testing"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestSettlementService_CalculateTaxes(t *testing.T) {
	service := NewSettlementService()

	// No rates set: breakdown is the identity, nil stays nil
	plain := &models.Receipt{PaidTo: "alice"}
	breakdown := service.CalculateTaxes(100, plain)
	assert.Equal(t, 100.0, breakdown.Subtotal)
	assert.Nil(t, breakdown.SST)
	assert.Nil(t, breakdown.ServiceCharge)
	assert.Equal(t, 100.0, breakdown.Total)

	// SST 6% + service charge 10% on 100: 100 + 6 + 10 = 116, additive not compounding
	taxed := &models.Receipt{PaidTo: "alice", SST: floatPtr(6), ServiceCharge: floatPtr(10)}
	breakdown = service.CalculateTaxes(100, taxed)
	assert.Equal(t, 6.0, *breakdown.SST)
	assert.Equal(t, 10.0, *breakdown.ServiceCharge)
	assert.Equal(t, 116.0, breakdown.Total)

	// Explicit zero rate is reported, unlike an unset one
	zero := &models.Receipt{PaidTo: "alice", SST: floatPtr(0)}
	breakdown = service.CalculateTaxes(50, zero)
	assert.Equal(t, 0.0, *breakdown.SST)
	assert.Equal(t, 50.0, breakdown.Total)
}

func TestSettlementService_CalculateTaxes_ComponentsReconcile(t *testing.T) {
	service := NewSettlementService()

	// 12.45 * 6% = 0.747 -> 0.75 and 12.45 * 10% = 1.245 -> 1.25 once
	// displayed; the total must match what the reader can add up:
	// 12.45 + 0.75 + 1.25 = 14.45
	receipt := &models.Receipt{PaidTo: "alice", SST: floatPtr(6), ServiceCharge: floatPtr(10)}
	breakdown := service.CalculateTaxes(12.45, receipt)

	assert.Equal(t, 0.75, *breakdown.SST)
	assert.Equal(t, 1.25, *breakdown.ServiceCharge)
	assert.Equal(t, 14.45, breakdown.Total)
	assert.Equal(t, breakdown.Subtotal+*breakdown.SST+*breakdown.ServiceCharge, breakdown.Total)
}

func TestSettlementService_ReceiptSubtotalAndTotal(t *testing.T) {
	service := NewSettlementService()

	receipt := &models.Receipt{
		PaidTo: "alice",
		Items: []models.Item{
			{Name: "Nasi Lemak", Price: 12.5, Quantity: 2},
			{Name: "Teh Tarik", Price: 3, Quantity: 1},
		},
	}

	assert.Equal(t, 28.0, service.ReceiptSubtotal(receipt))
	assert.Equal(t, 28.0, service.ReceiptTotal(receipt))

	// Empty receipt
	assert.Equal(t, 0.0, service.ReceiptSubtotal(&models.Receipt{PaidTo: "alice"}))

	receipt.SST = floatPtr(6)
	receipt.ServiceCharge = floatPtr(10)
	// 28 * 1.16 = 32.48
	assert.Equal(t, 32.48, service.ReceiptTotal(receipt))
}

func TestSettlementService_MemberConsumptionSubtotal(t *testing.T) {
	service := NewSettlementService()

	items := []models.Item{
		// 30 split three ways including the owner: 10 each
		{Name: "Pizza", Price: 30, Quantity: 1, UserIDs: []string{"alice", "bob", "carol"}},
		// Unassigned item contributes nothing to anyone
		{Name: "Mystery", Price: 99, Quantity: 1},
		// 8 consumed by bob alone
		{Name: "Coke", Price: 8, Quantity: 1, UserIDs: []string{"bob"}},
	}

	assert.Equal(t, 10.0, service.MemberConsumptionSubtotal("alice", items))
	assert.Equal(t, 18.0, service.MemberConsumptionSubtotal("bob", items))
	assert.Equal(t, 10.0, service.MemberConsumptionSubtotal("carol", items))
	assert.Equal(t, 0.0, service.MemberConsumptionSubtotal("dave", items))
}

func TestSettlementService_MemberOwedTotal(t *testing.T) {
	service := NewSettlementService()

	receipt := &models.Receipt{
		ID:     "r1",
		PaidTo: "alice",
		Items: []models.Item{
			// 30 over three consumers including Alice: 10 each, Alice's
			// own share is absorbed
			{Name: "Pizza", Price: 30, Quantity: 1, UserIDs: []string{"alice", "bob", "carol"}},
			// Bob alone owes the full 10
			{Name: "Sandwich", Price: 10, Quantity: 1, UserIDs: []string{"bob"}},
		},
	}

	assert.Equal(t, 0.0, service.MemberOwedTotal("alice", receipt), "owner owes nothing on their own receipt")
	assert.Equal(t, 20.0, service.MemberOwedTotal("bob", receipt))
	assert.Equal(t, 10.0, service.MemberOwedTotal("carol", receipt))

	// Settled items drop out of what is owed
	receipt.Items[1].PaidByIDs = []string{"bob"}
	assert.Equal(t, 10.0, service.MemberOwedTotal("bob", receipt))

	// Tax rates scale each share: 10 * 1.16 = 11.60
	receipt.SST = floatPtr(6)
	receipt.ServiceCharge = floatPtr(10)
	assert.Equal(t, 11.6, service.MemberOwedTotal("carol", receipt))
}

func TestSettlementService_SharedItemWithOwner(t *testing.T) {
	service := NewSettlementService()

	// Lunch set of 20 shared by the owner and one other member: the divisor
	// counts both, so the member owes half and the owner absorbs their own
	receipt := &models.Receipt{
		ID:     "r1",
		PaidTo: "a",
		Items: []models.Item{
			{Name: "Lunch set", Price: 20, Quantity: 1, UserIDs: []string{"a", "b"}},
		},
	}

	assert.Equal(t, 10.0, service.MemberOwedTotal("b", receipt))

	// With sst 6% + service charge 10%: 10 * 1.16 = 11.60
	receipt.SST = floatPtr(6)
	receipt.ServiceCharge = floatPtr(10)
	assert.Equal(t, 11.6, service.MemberOwedTotal("b", receipt))

	// Settling flips owed into paid
	receipt.Items = service.MarkItemsPaid(receipt.Items, "b")
	assert.Equal(t, 0.0, service.MemberOwedTotal("b", receipt))
	assert.Equal(t, 11.6, service.MemberPaidTotal("b", receipt))
}

func TestSettlementService_MemberPaidTotal(t *testing.T) {
	service := NewSettlementService()

	receipt := &models.Receipt{
		ID:     "r1",
		PaidTo: "alice",
		SST:    floatPtr(6),
		Items: []models.Item{
			{Name: "Sandwich", Price: 10, Quantity: 1, UserIDs: []string{"bob"}, PaidByIDs: []string{"bob"}},
			{Name: "Soup", Price: 20, Quantity: 1, UserIDs: []string{"bob", "carol"}},
		},
	}

	// Owner is treated as having fronted the whole bill: 30 * 1.06 = 31.80
	assert.Equal(t, 31.8, service.MemberPaidTotal("alice", receipt))
	// Bob settled only the sandwich: 10 * 1.06 = 10.60
	assert.Equal(t, 10.6, service.MemberPaidTotal("bob", receipt))
	assert.Equal(t, 0.0, service.MemberPaidTotal("carol", receipt))
}

func TestSettlementService_ReceiptPaidPercentage(t *testing.T) {
	service := NewSettlementService()

	receipt := &models.Receipt{
		PaidTo: "alice",
		Items: []models.Item{
			{Name: "Burger", Price: 15, Quantity: 1, UserIDs: []string{"bob"}},
			{Name: "Fries", Price: 6, Quantity: 1, UserIDs: []string{"bob", "carol"}},
			// Owner-only and unassigned items never count toward the percentage
			{Name: "Coffee", Price: 4, Quantity: 1, UserIDs: []string{"alice"}},
			{Name: "Unassigned", Price: 9, Quantity: 1},
		},
	}

	assert.Equal(t, 0.0, service.ReceiptPaidPercentage(receipt))

	// One of two eligible items fully settled
	receipt.Items[0].PaidByIDs = []string{"bob"}
	assert.Equal(t, 50.0, service.ReceiptPaidPercentage(receipt))

	// Fries needs both bob and carol before it counts
	receipt.Items[1].PaidByIDs = []string{"bob"}
	assert.Equal(t, 50.0, service.ReceiptPaidPercentage(receipt))
	receipt.Items[1].PaidByIDs = []string{"bob", "carol"}
	assert.Equal(t, 100.0, service.ReceiptPaidPercentage(receipt))

	// No eligible items at all
	empty := &models.Receipt{PaidTo: "alice", Items: []models.Item{{Name: "Coffee", Price: 4, Quantity: 1, UserIDs: []string{"alice"}}}}
	assert.Equal(t, 0.0, service.ReceiptPaidPercentage(empty))
}

func TestSettlementService_MarkItemsPaid(t *testing.T) {
	service := NewSettlementService()

	items := []models.Item{
		{Name: "Burger", Price: 15, Quantity: 1, UserIDs: []string{"bob"}},
		{Name: "Fries", Price: 6, Quantity: 1, UserIDs: []string{"bob", "carol"}},
		{Name: "Coffee", Price: 4, Quantity: 1, UserIDs: []string{"carol"}},
	}

	marked := service.MarkItemsPaid(items, "bob")

	assert.Equal(t, []string{"bob"}, marked[0].PaidByIDs)
	assert.Equal(t, []string{"bob"}, marked[1].PaidByIDs)
	assert.Empty(t, marked[2].PaidByIDs, "items bob does not consume are untouched")

	// One timestamp per call, stamped on every newly settled item
	assert.Equal(t, marked[0].PaidTimestamps["bob"], marked[1].PaidTimestamps["bob"])
	assert.NotZero(t, marked[0].PaidTimestamps["bob"])

	// Input is never mutated
	assert.Empty(t, items[0].PaidByIDs)
	assert.Nil(t, items[0].PaidTimestamps)

	// Marking again is a no-op and keeps the original timestamps
	again := service.MarkItemsPaid(marked, "bob")
	assert.Equal(t, marked, again)
}

func TestSettlementService_MarkItemsUnpaid(t *testing.T) {
	service := NewSettlementService()

	items := []models.Item{
		{Name: "Burger", Price: 15, Quantity: 1, UserIDs: []string{"bob"}},
		{Name: "Fries", Price: 6, Quantity: 1, UserIDs: []string{"bob", "carol"}},
	}

	marked := service.MarkItemsPaid(service.MarkItemsPaid(items, "bob"), "carol")
	cleared := service.MarkItemsUnpaid(marked, "bob")

	assert.Empty(t, cleared[0].PaidByIDs)
	assert.NotContains(t, cleared[0].PaidTimestamps, "bob")

	// Carol's marker on the shared item survives
	assert.Equal(t, []string{"carol"}, cleared[1].PaidByIDs)
	assert.Contains(t, cleared[1].PaidTimestamps, "carol")

	// Mark then unmark restores what is owed
	receipt := &models.Receipt{PaidTo: "alice", Items: cleared}
	assert.Equal(t, service.MemberOwedTotal("bob", &models.Receipt{PaidTo: "alice", Items: items}),
		service.MemberOwedTotal("bob", receipt))
}

func TestSettlementService_GroupInsights(t *testing.T) {
	service := NewSettlementService()

	members := []models.Member{{ID: "alice"}, {ID: "bob"}}
	receipts := []*models.Receipt{
		{ID: "r1", Name: "Dinner", PaidTo: "alice", Items: []models.Item{{Name: "Set", Price: 40, Quantity: 1}}},
		{ID: "r2", Name: "Lunch", PaidTo: "bob", Items: []models.Item{{Name: "Set", Price: 40, Quantity: 1}}},
		{ID: "r3", Name: "Snacks", PaidTo: "bob", Items: []models.Item{{Name: "Chips", Price: 5, Quantity: 2}}},
	}

	insights := service.GroupInsights(receipts, members)

	assert.Equal(t, 90.0, insights.TotalAmount)
	assert.Equal(t, 3, insights.ReceiptCount)
	assert.Equal(t, 2, insights.MemberCount)
	// Ties go to the first receipt in list order
	assert.Equal(t, "r1", insights.HighestReceipt.ID)
	assert.Equal(t, 40.0, insights.HighestTotal)

	empty := service.GroupInsights(nil, members)
	assert.Equal(t, 0.0, empty.TotalAmount)
	assert.Nil(t, empty.HighestReceipt)
}

func TestSettlementService_AggregateDebts(t *testing.T) {
	service := NewSettlementService()

	members := []models.Member{{ID: "alice"}, {ID: "bob"}, {ID: "carol"}}
	receipts := []*models.Receipt{
		{
			ID: "r1", Name: "Dinner", PaidTo: "alice",
			Items: []models.Item{
				// 30 over three consumers: bob and carol owe 10 each
				{Name: "Pizza", Price: 30, Quantity: 1, UserIDs: []string{"alice", "bob", "carol"}},
				// Settled, contributes nothing
				{Name: "Coke", Price: 8, Quantity: 1, UserIDs: []string{"bob"}, PaidByIDs: []string{"bob"}},
			},
		},
		{
			ID: "r2", Name: "Lunch", PaidTo: "bob",
			Items: []models.Item{
				{Name: "Soup", Price: 12, Quantity: 1, UserIDs: []string{"carol"}},
			},
		},
	}

	debts := service.AggregateDebts(receipts, members)

	assert.Len(t, debts, 3)
	// Sorted by member list order, debtor first
	assert.Equal(t, "bob", debts[0].FromMemberID)
	assert.Equal(t, "alice", debts[0].ToMemberID)
	assert.Equal(t, 10.0, debts[0].Amount)
	assert.Equal(t, "carol", debts[1].FromMemberID)
	assert.Equal(t, "alice", debts[1].ToMemberID)
	assert.Equal(t, 10.0, debts[1].Amount)
	assert.Equal(t, "carol", debts[2].FromMemberID)
	assert.Equal(t, "bob", debts[2].ToMemberID)
	assert.Equal(t, 12.0, debts[2].Amount)

	assert.Len(t, debts[0].Items, 1)
	assert.Equal(t, "Pizza", debts[0].Items[0].ItemName)
	assert.Equal(t, "r1", debts[0].Items[0].ReceiptID)

	// Each debtor's aggregate matches their per-receipt owed totals
	for _, member := range members {
		var owed float64
		for _, receipt := range receipts {
			owed += service.MemberOwedTotal(member.ID, receipt)
		}
		var aggregated float64
		for _, debt := range debts {
			if debt.FromMemberID == member.ID {
				aggregated += debt.Amount
			}
		}
		assert.InDelta(t, owed, aggregated, 0.01, "debts for %s should match owed totals", member.ID)
	}
}

func TestSettlementService_AggregateDebts_RemovedMember(t *testing.T) {
	service := NewSettlementService()

	// "ghost" was removed from the group but still appears on an item
	members := []models.Member{{ID: "alice"}, {ID: "bob"}}
	receipts := []*models.Receipt{
		{
			ID: "r1", Name: "Dinner", PaidTo: "alice",
			Items: []models.Item{
				// ghost still counts in the divisor: bob owes 30/3 = 10,
				// ghost's share is dropped from the output
				{Name: "Pizza", Price: 30, Quantity: 1, UserIDs: []string{"alice", "bob", "ghost"}},
			},
		},
		{
			// A receipt owned by a removed member produces no debts at all
			ID: "r2", Name: "Drinks", PaidTo: "ghost",
			Items: []models.Item{
				{Name: "Beer", Price: 18, Quantity: 1, UserIDs: []string{"alice", "bob"}},
			},
		},
	}

	debts := service.AggregateDebts(receipts, members)

	assert.Len(t, debts, 1)
	assert.Equal(t, "bob", debts[0].FromMemberID)
	assert.Equal(t, "alice", debts[0].ToMemberID)
	assert.Equal(t, 10.0, debts[0].Amount)
}

func TestSettlementService_BuildReceiptSummary(t *testing.T) {
	service := NewSettlementService()

	members := []models.Member{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	}
	receipt := &models.Receipt{
		ID: "r1", PaidTo: "alice", SST: floatPtr(6), ServiceCharge: floatPtr(10),
		Items: []models.Item{
			{Name: "Sandwich", Price: 10, Quantity: 1, UserIDs: []string{"bob"}},
		},
	}

	summary := service.BuildReceiptSummary(receipt, members)

	assert.Equal(t, 11.6, summary.Taxes.Total)
	assert.Equal(t, 0.0, summary.PaidPercentage)
	assert.Len(t, summary.Members, 2)

	alice, bob := summary.Members[0], summary.Members[1]
	assert.True(t, alice.IsOwner)
	assert.Equal(t, 0.0, alice.Owed)
	assert.Equal(t, 11.6, alice.Paid)
	assert.False(t, bob.IsOwner)
	assert.Equal(t, 10.0, bob.Consumption)
	// 10 * 1.16 = 11.60
	assert.Equal(t, 11.6, bob.Owed)
	assert.Equal(t, 0.0, bob.Paid)
}

package services

import (
	"testing"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestSettlementService_DinnerScenario(t *testing.T) {
	service := NewSettlementService()

	// Group dinner paid by Del, SST 6% + service charge 10%:
	// Bakmi Ayam (36): del, joj, tash
	// Pangsit (15): joj, tash, ji
	// Kwetiaw (24): del
	// Es Teh (12): everyone
	members := []models.Member{
		{ID: "del", Name: "Del"},
		{ID: "joj", Name: "Joj"},
		{ID: "tash", Name: "Tash"},
		{ID: "ji", Name: "Ji"},
	}
	receipt := &models.Receipt{
		ID:            "r1",
		Name:          "Dinner",
		PaidTo:        "del",
		SST:           floatPtr(6),
		ServiceCharge: floatPtr(10),
		Items: []models.Item{
			{Name: "Bakmi Ayam", Price: 36, Quantity: 1, UserIDs: []string{"del", "joj", "tash"}},
			{Name: "Pangsit", Price: 15, Quantity: 1, UserIDs: []string{"joj", "tash", "ji"}},
			{Name: "Kwetiaw", Price: 24, Quantity: 1, UserIDs: []string{"del"}},
			{Name: "Es Teh", Price: 12, Quantity: 1, UserIDs: []string{"del", "joj", "tash", "ji"}},
		},
	}

	// Subtotal: 36 + 15 + 24 + 12 = 87
	// Total: 87 * 1.16 = 100.92
	taxes := service.CalculateTaxes(service.ReceiptSubtotal(receipt), receipt)
	assert.Equal(t, 87.0, taxes.Subtotal)
	assert.Equal(t, 5.22, *taxes.SST)
	assert.Equal(t, 8.7, *taxes.ServiceCharge)
	assert.Equal(t, 100.92, taxes.Total)

	// Raw consumption splits every item over all its consumers:
	// Del:  36/3 + 24 + 12/4 = 12 + 24 + 3 = 39
	// Joj:  36/3 + 15/3 + 12/4 = 12 + 5 + 3 = 20
	// Tash: 36/3 + 15/3 + 12/4 = 12 + 5 + 3 = 20
	// Ji:   15/3 + 12/4 = 5 + 3 = 8
	assert.Equal(t, 39.0, service.MemberConsumptionSubtotal("del", receipt.Items))
	assert.Equal(t, 20.0, service.MemberConsumptionSubtotal("joj", receipt.Items))
	assert.Equal(t, 20.0, service.MemberConsumptionSubtotal("tash", receipt.Items))
	assert.Equal(t, 8.0, service.MemberConsumptionSubtotal("ji", receipt.Items))

	// Owed divides each item over all its consumers, Del included; Del's
	// own shares are absorbed, so owed matches consumption for everyone else:
	// Joj:  36/3 + 15/3 + 12/4 = 12 + 5 + 3 = 20, taxed: 20 * 1.16 = 23.20
	// Tash: same as Joj = 23.20
	// Ji:   15/3 + 12/4 = 5 + 3 = 8, taxed: 8 * 1.16 = 9.28
	assert.Equal(t, 0.0, service.MemberOwedTotal("del", receipt))
	assert.Equal(t, 23.2, service.MemberOwedTotal("joj", receipt))
	assert.Equal(t, 23.2, service.MemberOwedTotal("tash", receipt))
	assert.Equal(t, 9.28, service.MemberOwedTotal("ji", receipt))

	// Everything owed plus Del's own consumption covers the whole bill:
	// 23.20 + 23.20 + 9.28 + 39 * 1.16 = 100.92
	owedSum := service.MemberOwedTotal("joj", receipt) +
		service.MemberOwedTotal("tash", receipt) +
		service.MemberOwedTotal("ji", receipt)
	assert.InDelta(t, 100.92, owedSum+39*1.16, 0.01)

	// Nothing settled yet
	assert.Equal(t, 0.0, service.ReceiptPaidPercentage(receipt))
	assert.Equal(t, 100.92, service.MemberPaidTotal("del", receipt))
	assert.Equal(t, 0.0, service.MemberPaidTotal("joj", receipt))

	// Ji settles up: their two items gain Ji's marker, but both still wait on
	// Joj and Tash so the percentage stays at 0 (Kwetiaw never counts).
	receipt.Items = service.MarkItemsPaid(receipt.Items, "ji")
	assert.Equal(t, 0.0, service.MemberOwedTotal("ji", receipt))
	assert.Equal(t, 9.28, service.MemberPaidTotal("ji", receipt))
	assert.Equal(t, 0.0, service.ReceiptPaidPercentage(receipt))

	// Joj and Tash settle: all three eligible items are fully paid
	receipt.Items = service.MarkItemsPaid(receipt.Items, "joj")
	receipt.Items = service.MarkItemsPaid(receipt.Items, "tash")
	assert.Equal(t, 100.0, service.ReceiptPaidPercentage(receipt))
	assert.Equal(t, 0.0, service.MemberOwedTotal("joj", receipt))
	assert.Equal(t, 23.2, service.MemberPaidTotal("joj", receipt))

	// The summary ties it all together
	summary := service.BuildReceiptSummary(receipt, members)
	assert.Equal(t, 100.92, summary.Taxes.Total)
	assert.Equal(t, 100.0, summary.PaidPercentage)
	for _, m := range summary.Members {
		assert.Equal(t, 0.0, m.Owed, "%s should owe nothing once settled", m.MemberName)
	}

	// And nobody owes anybody across the group anymore
	assert.Empty(t, service.AggregateDebts([]*models.Receipt{receipt}, members))
}

func TestSettlementService_PaidPercentageNeverDecreasesWhenMarking(t *testing.T) {
	service := NewSettlementService()

	receipt := &models.Receipt{
		PaidTo: "del",
		Items: []models.Item{
			{Name: "A", Price: 10, Quantity: 1, UserIDs: []string{"joj"}},
			{Name: "B", Price: 10, Quantity: 1, UserIDs: []string{"joj", "tash"}},
			{Name: "C", Price: 10, Quantity: 1, UserIDs: []string{"tash", "ji"}},
		},
	}

	previous := service.ReceiptPaidPercentage(receipt)
	for _, member := range []string{"joj", "tash", "ji"} {
		receipt.Items = service.MarkItemsPaid(receipt.Items, member)
		current := service.ReceiptPaidPercentage(receipt)
		assert.GreaterOrEqual(t, current, previous, "marking %s paid should never lower the percentage", member)
		previous = current
	}
	assert.Equal(t, 100.0, previous)
}

func TestSettlementService_MarkUnmarkRoundTrip(t *testing.T) {
	service := NewSettlementService()

	original := []models.Item{
		{Name: "A", Price: 18, Quantity: 1, UserIDs: []string{"joj", "tash"}},
		{Name: "B", Price: 7.5, Quantity: 2, UserIDs: []string{"joj"}},
	}
	receipt := &models.Receipt{PaidTo: "del", SST: floatPtr(6)}

	receipt.Items = original
	owedBefore := service.MemberOwedTotal("joj", receipt)

	receipt.Items = service.MarkItemsPaid(original, "joj")
	assert.Equal(t, 0.0, service.MemberOwedTotal("joj", receipt))

	receipt.Items = service.MarkItemsUnpaid(receipt.Items, "joj")
	assert.Equal(t, owedBefore, service.MemberOwedTotal("joj", receipt))
	for _, item := range receipt.Items {
		assert.Empty(t, item.PaidByIDs)
		assert.NotContains(t, item.PaidTimestamps, "joj")
	}
}

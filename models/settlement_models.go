package models

// TaxBreakdown represents a subtotal with its tax components applied.
// SST and ServiceCharge stay nil when the receipt has no such rate so the
// caller can distinguish "no tax" from "zero tax".
type TaxBreakdown struct {
	Subtotal      float64  `json:"subtotal"`
	SST           *float64 `json:"sst"`
	ServiceCharge *float64 `json:"serviceCharge"`
	Total         float64  `json:"total"`
}

// MemberReceiptSummary represents one member's position on a single receipt
type MemberReceiptSummary struct {
	MemberID    string  `json:"memberId"`
	MemberName  string  `json:"memberName"`
	Consumption float64 `json:"consumption"`
	Owed        float64 `json:"owed"`
	Paid        float64 `json:"paid"`
	IsOwner     bool    `json:"isOwner"`
}

// ReceiptSummary is the full computed view of one receipt
type ReceiptSummary struct {
	Receipt        *Receipt               `json:"receipt"`
	Taxes          TaxBreakdown           `json:"taxes"`
	Members        []MemberReceiptSummary `json:"members"`
	PaidPercentage float64                `json:"paidPercentage"`
}

// ReceiptListing pairs a receipt with its grand total for list views
type ReceiptListing struct {
	Receipt        *Receipt `json:"receipt"`
	Total          float64  `json:"total"`
	PaidPercentage float64  `json:"paidPercentage"`
}

// DebtItem is one unsettled item share contributing to a debt
type DebtItem struct {
	ReceiptID   string  `json:"receiptId"`
	ReceiptName string  `json:"receiptName"`
	ItemName    string  `json:"itemName"`
	Amount      float64 `json:"amount"`
}

// Debt aggregates everything one consumer owes one receipt owner
type Debt struct {
	FromMemberID string     `json:"fromMemberId"`
	ToMemberID   string     `json:"toMemberId"`
	Amount       float64    `json:"amount"`
	Items        []DebtItem `json:"items"`
}

// GroupInsights is the aggregate view across a group's receipts
type GroupInsights struct {
	TotalAmount    float64  `json:"totalAmount"`
	ReceiptCount   int      `json:"receiptCount"`
	MemberCount    int      `json:"memberCount"`
	HighestReceipt *Receipt `json:"highestReceipt"`
	HighestTotal   float64  `json:"highestTotal"`
}

// Attachment describes one stored receipt image
type Attachment struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Size    int64  `json:"size"`
	Created int64  `json:"created"`
}

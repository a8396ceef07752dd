// models/models.go
package models

import "time"

// Group represents a set of members sharing receipts
type Group struct {
	ID           string   `json:"_id"`
	CreationTime int64    `json:"_creationTime"`
	Name         string   `json:"name"`
	Members      []Member `json:"members"`
	ReceiptIDs   []string `json:"receipts"`
}

// Member is a participant in a group who may consume and/or pay for items
type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreationTime int64  `json:"createdAt"`
}

// Receipt represents one shared bill, owned by the member who fronted payment
type Receipt struct {
	ID            string   `json:"_id"`
	GroupID       string   `json:"groupId"`
	Name          string   `json:"name"`
	PaidTo        string   `json:"paidTo"`
	SST           *float64 `json:"sst"`
	ServiceCharge *float64 `json:"serviceCharge"`
	Items         []Item   `json:"items"`
	CreationTime  int64    `json:"createdAt"`
}

// Item is one priced line entry on a receipt, consumed by zero or more
// members and settled by a subset of them
type Item struct {
	Name           string           `json:"name"`
	Price          float64          `json:"price"`
	Quantity       int              `json:"quantity"`
	UserIDs        []string         `json:"userIds,omitempty"`
	PaidByIDs      []string         `json:"paidByIds,omitempty"`
	PaidTimestamps map[string]int64 `json:"paidTimestamps,omitempty"`
}

// ImportedReceipt is the bulk-import document produced by external receipt
// scanners. Field names are fixed by the import format.
type ImportedReceipt struct {
	StoreName     string         `json:"store_name"`
	Items         []ImportedItem `json:"items"`
	SST           *float64       `json:"SST(%)"`
	ServiceCharge *float64       `json:"service_charge(%)"`
}

// ImportedItem is a single line in the import document
type ImportedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CreateGroupRequest request model
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// GroupIDRequest request model for operations keyed by group id
type GroupIDRequest struct {
	GroupID string `json:"groupId" binding:"required"`
}

// AddMemberRequest request model
type AddMemberRequest struct {
	GroupID string `json:"groupId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// UpdateMemberRequest request model
type UpdateMemberRequest struct {
	GroupID  string `json:"groupId" binding:"required"`
	MemberID string `json:"memberId" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// RemoveMemberRequest request model
type RemoveMemberRequest struct {
	GroupID  string `json:"groupId" binding:"required"`
	MemberID string `json:"memberId" binding:"required"`
}

// CreateReceiptRequest request model
type CreateReceiptRequest struct {
	GroupID string `json:"groupId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	PaidTo  string `json:"paidTo" binding:"required"`
}

// ReceiptIDRequest request model for operations keyed by receipt id
type ReceiptIDRequest struct {
	ReceiptID string `json:"receiptId" binding:"required"`
}

// UpdateReceiptSettingsRequest request model
type UpdateReceiptSettingsRequest struct {
	ReceiptID     string   `json:"receiptId" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	PaidTo        string   `json:"paidTo" binding:"required"`
	SST           *float64 `json:"sst"`
	ServiceCharge *float64 `json:"serviceCharge"`
}

// AddItemRequest request model
type AddItemRequest struct {
	ReceiptID string   `json:"receiptId" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Price     float64  `json:"price" binding:"min=0"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	UserIDs   []string `json:"userIds"`
}

// UpdateItemRequest request model
type UpdateItemRequest struct {
	ReceiptID string   `json:"receiptId" binding:"required"`
	ItemIndex int      `json:"itemIndex" binding:"min=0"`
	Name      string   `json:"name" binding:"required"`
	Price     float64  `json:"price" binding:"min=0"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	UserIDs   []string `json:"userIds"`
}

// RemoveItemRequest request model
type RemoveItemRequest struct {
	ReceiptID string `json:"receiptId" binding:"required"`
	ItemIndex int    `json:"itemIndex" binding:"min=0"`
}

// AssignItemUsersRequest request model
type AssignItemUsersRequest struct {
	ReceiptID string   `json:"receiptId" binding:"required"`
	ItemIndex int      `json:"itemIndex" binding:"min=0"`
	UserIDs   []string `json:"userIds"`
}

// MarkPaidRequest request model for marking a member's shares paid or unpaid
type MarkPaidRequest struct {
	ReceiptID string `json:"receiptId" binding:"required"`
	MemberID  string `json:"memberId" binding:"required"`
}

// ImportReceiptRequest request model
type ImportReceiptRequest struct {
	GroupID  string          `json:"groupId" binding:"required"`
	PaidTo   string          `json:"paidTo" binding:"required"`
	Document ImportedReceipt `json:"document" binding:"required"`
}

// CreateGroupResponse response model
type CreateGroupResponse struct {
	GroupID string `json:"groupId"`
}

// CreateReceiptResponse response model
type CreateReceiptResponse struct {
	ReceiptID string `json:"receiptId"`
}

// NewGroup creates a new Group instance
func NewGroup(id, name string) *Group {
	return &Group{
		ID:           id,
		CreationTime: time.Now().UnixMilli(),
		Name:         name,
		Members:      []Member{},
		ReceiptIDs:   []string{},
	}
}

// NewMember creates a new Member instance
func NewMember(id, name string) Member {
	return Member{
		ID:           id,
		Name:         name,
		CreationTime: time.Now().UnixMilli(),
	}
}

// NewReceipt creates a new Receipt instance with an empty item list
func NewReceipt(id, groupID, name, paidTo string) *Receipt {
	return &Receipt{
		ID:           id,
		GroupID:      groupID,
		Name:         name,
		PaidTo:       paidTo,
		Items:        []Item{},
		CreationTime: time.Now().UnixMilli(),
	}
}

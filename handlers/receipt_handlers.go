package handlers

import (
	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/services"
	"github.com/evenly-app/evenly-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateReceipt handles the creation of a new receipt
func CreateReceipt(c *gin.Context) {
	var request models.CreateReceiptRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.CreateReceipt(request.GroupID, request.Name, request.PaidTo)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.CreateReceiptResponse{ReceiptID: receipt.ID})
}

// GetReceipt handles retrieving a receipt with its computed summary
func GetReceipt(c *gin.Context) {
	var request models.ReceiptIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	summary, err := buildSummary(request.ReceiptID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, summary)
}

// ListReceipts lists a group's receipts with their totals
func ListReceipts(c *gin.Context) {
	var request models.GroupIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if _, err := services.GetGroup(request.GroupID); err != nil {
		utils.HandleError(c, err)
		return
	}

	receipts, err := handlerServices.ReceiptService.GetGroupReceipts(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listings := []models.ReceiptListing{}
	for _, receipt := range receipts {
		listings = append(listings, models.ReceiptListing{
			Receipt:        receipt,
			Total:          handlerServices.SettlementService.ReceiptTotal(receipt),
			PaidPercentage: handlerServices.SettlementService.ReceiptPaidPercentage(receipt),
		})
	}

	utils.HandleSuccess(c, listings)
}

// DeleteReceipt removes a receipt from a group
func DeleteReceipt(c *gin.Context) {
	var request struct {
		GroupID   string `json:"groupId" binding:"required"`
		ReceiptID string `json:"receiptId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if err := handlerServices.ReceiptService.DeleteReceipt(request.GroupID, request.ReceiptID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// UpdateReceiptSettings updates a receipt's name, owner and tax rates
func UpdateReceiptSettings(c *gin.Context) {
	var request models.UpdateReceiptSettingsRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if err := handlerServices.ReceiptService.UpdateSettings(&request); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// AddItem appends an item to a receipt
func AddItem(c *gin.Context) {
	var request models.AddItemRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.AddItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// UpdateItem replaces an item on a receipt
func UpdateItem(c *gin.Context) {
	var request models.UpdateItemRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.UpdateItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// RemoveItem deletes an item from a receipt
func RemoveItem(c *gin.Context) {
	var request models.RemoveItemRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.RemoveItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// AssignItemUsers replaces an item's consumer set
func AssignItemUsers(c *gin.Context) {
	var request models.AssignItemUsersRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.AssignItemUsers(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// MarkItemsPaid marks all of a member's shares on a receipt as settled
func MarkItemsPaid(c *gin.Context) {
	var request models.MarkPaidRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.MarkPaid(request.ReceiptID, request.MemberID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// MarkItemsUnpaid clears a member's paid markers on a receipt
func MarkItemsUnpaid(c *gin.Context) {
	var request models.MarkPaidRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ReceiptService.MarkUnpaid(request.ReceiptID, request.MemberID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// ImportReceipt bulk-populates a new receipt from an import document
func ImportReceipt(c *gin.Context) {
	var request models.ImportReceiptRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	receipt, err := handlerServices.ImportService.ImportReceipt(request.GroupID, request.PaidTo, &request.Document)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, receipt)
}

// buildSummary loads a receipt and its group, then computes the full view
func buildSummary(receiptID string) (*models.ReceiptSummary, error) {
	receipt, err := handlerServices.ReceiptService.GetReceipt(receiptID)
	if err != nil {
		return nil, err
	}

	group, err := services.GetGroup(receipt.GroupID)
	if err != nil {
		return nil, err
	}

	return handlerServices.SettlementService.BuildReceiptSummary(receipt, group.Members), nil
}

package handlers

import (
	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/services"
	"github.com/evenly-app/evenly-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetReceiptSummary returns the computed settlement view of one receipt
func GetReceiptSummary(c *gin.Context) {
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

// GetGroupInsights returns the aggregate view across a group's receipts
func GetGroupInsights(c *gin.Context) {
	var request models.GroupIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	group, err := services.GetGroup(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	receipts, err := handlerServices.ReceiptService.GetGroupReceipts(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, handlerServices.SettlementService.GroupInsights(receipts, group.Members))
}

// GetGroupDebts returns the aggregated who-pays-whom view for a group
func GetGroupDebts(c *gin.Context) {
	var request models.GroupIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	group, err := services.GetGroup(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	receipts, err := handlerServices.ReceiptService.GetGroupReceipts(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	debts := handlerServices.SettlementService.AggregateDebts(receipts, group.Members)
	if debts == nil {
		debts = []models.Debt{}
	}

	utils.HandleSuccess(c, debts)
}

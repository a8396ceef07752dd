package routes

import (
	"github.com/evenly-app/evenly-backend/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, uploadDir string) {
	// Serve stored receipt images
	router.Static("/uploads", uploadDir)

	v1 := router.Group("/api/v1")
	{
		// Group endpoints
		v1.POST("/groups/create", handlers.CreateGroup)
		v1.POST("/groups/get", handlers.GetGroup)
		v1.POST("/groups/delete", handlers.DeleteGroup)
		v1.POST("/groups/members/add", handlers.AddMember)
		v1.POST("/groups/members/update", handlers.UpdateMember)
		v1.POST("/groups/members/remove", handlers.RemoveMember)

		// Receipt endpoints
		v1.POST("/receipts/create", handlers.CreateReceipt)
		v1.POST("/receipts/get", handlers.GetReceipt)
		v1.POST("/receipts/list", handlers.ListReceipts)
		v1.POST("/receipts/delete", handlers.DeleteReceipt)
		v1.POST("/receipts/updateSettings", handlers.UpdateReceiptSettings)
		v1.POST("/receipts/import", handlers.ImportReceipt)
		v1.POST("/receipts/summary", handlers.GetReceiptSummary)

		// Item endpoints
		v1.POST("/items/add", handlers.AddItem)
		v1.POST("/items/update", handlers.UpdateItem)
		v1.POST("/items/remove", handlers.RemoveItem)
		v1.POST("/items/assignUsers", handlers.AssignItemUsers)
		v1.POST("/items/markPaid", handlers.MarkItemsPaid)
		v1.POST("/items/markUnpaid", handlers.MarkItemsUnpaid)

		// Settlement views
		v1.POST("/groups/insights", handlers.GetGroupInsights)
		v1.POST("/groups/debts", handlers.GetGroupDebts)

		// Export endpoint
		v1.GET("/groups/:groupId/export", handlers.ExportGroup)

		// Attachment endpoints
		v1.POST("/receipts/:receiptId/attachments", handlers.UploadAttachment)
		v1.GET("/receipts/:receiptId/attachments", handlers.ListAttachments)
		v1.DELETE("/receipts/:receiptId/attachments/:filename", handlers.DeleteAttachment)
	}
}

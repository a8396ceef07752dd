package handlers

import (
	"github.com/evenly-app/evenly-backend/utils"

	"github.com/gin-gonic/gin"
)

// UploadAttachment stores a receipt image from a multipart form
func UploadAttachment(c *gin.Context) {
	receiptID := c.Param("receiptId")

	if _, err := handlerServices.ReceiptService.GetReceipt(receiptID); err != nil {
		utils.HandleError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.HandleError(c, utils.NewBadRequestError("Missing file upload"))
		return
	}

	attachment, err := handlerServices.AttachmentService.SaveAttachment(receiptID, header)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, attachment)
}

// ListAttachments returns all stored images for a receipt
func ListAttachments(c *gin.Context) {
	receiptID := c.Param("receiptId")

	attachments, err := handlerServices.AttachmentService.ListAttachments(receiptID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, attachments)
}

// DeleteAttachment removes one stored image from a receipt
func DeleteAttachment(c *gin.Context) {
	receiptID := c.Param("receiptId")
	filename := c.Param("filename")

	if err := handlerServices.AttachmentService.DeleteAttachment(receiptID, filename); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

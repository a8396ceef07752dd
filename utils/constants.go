package utils

const (
	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrGroupNotFound    = "Group not found"
	ErrReceiptNotFound  = "Receipt not found"
	ErrMemberNotFound   = "Member not found"
	ErrItemNotFound     = "Item not found"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Attachment limits
	MaxAttachmentSize = 10 << 20 // 10MB

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)

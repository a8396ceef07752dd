package handlers

import (
	"github.com/evenly-app/evenly-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	ReceiptService    *services.ReceiptService
	SettlementService *services.SettlementService
	ImportService     *services.ImportService
	ExcelService      *services.ExcelService
	AttachmentService *services.AttachmentService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices(uploadDir string) *HandlerServices {
	settlementService := services.NewSettlementService()
	receiptService := services.NewReceiptService(settlementService)
	return &HandlerServices{
		ReceiptService:    receiptService,
		SettlementService: settlementService,
		ImportService:     services.NewImportService(receiptService),
		ExcelService:      services.NewExcelService(receiptService, settlementService),
		AttachmentService: services.NewAttachmentService(uploadDir),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers(uploadDir string) {
	handlerServices = NewHandlerServices(uploadDir)
}

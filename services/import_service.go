// services/import_service.go
package services

import (
	"fmt"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/utils"
)

// ImportService turns an externally produced receipt document into a stored
// receipt. The resulting receipt is indistinguishable from a manually built
// one; items start unassigned.
type ImportService struct {
	receiptService *ReceiptService
}

// NewImportService creates a new import service
func NewImportService(receiptService *ReceiptService) *ImportService {
	return &ImportService{
		receiptService: receiptService,
	}
}

// ImportReceipt validates the import document and stores it as a new
// receipt. The whole receipt is written in one store, so a failure never
// leaves a half-imported receipt behind.
func (s *ImportService) ImportReceipt(groupID, paidTo string, doc *models.ImportedReceipt) (*models.Receipt, error) {
	if err := s.validateDocument(doc); err != nil {
		return nil, err
	}

	name, items := buildImportedReceipt(doc)
	return s.receiptService.CreateReceiptWithItems(groupID, name, paidTo, doc.SST, doc.ServiceCharge, items)
}

// buildImportedReceipt maps a validated import document to a receipt name
// and item list
func buildImportedReceipt(doc *models.ImportedReceipt) (string, []models.Item) {
	name := doc.StoreName
	if name == "" {
		name = "Imported receipt"
	}

	items := make([]models.Item, 0, len(doc.Items))
	for _, line := range doc.Items {
		items = append(items, models.Item{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return name, items
}

// validateDocument rejects malformed import documents before anything is stored
func (s *ImportService) validateDocument(doc *models.ImportedReceipt) error {
	if err := utils.ValidateNotEmpty(doc.Items, "items"); err != nil {
		return err
	}
	if err := utils.ValidatePercentage(doc.SST, "SST(%)"); err != nil {
		return err
	}
	if err := utils.ValidatePercentage(doc.ServiceCharge, "service_charge(%)"); err != nil {
		return err
	}

	for i, line := range doc.Items {
		if err := utils.ValidateItemData(line.Name, line.Price, line.Quantity); err != nil {
			return utils.NewValidationError(fmt.Sprintf("Item %d: %s", i+1, err.Error()))
		}
	}
	return nil
}

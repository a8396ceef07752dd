// services/receipt_service.go
package services

import (
	"sync"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/repository"
	"github.com/evenly-app/evenly-backend/utils"
)

// ReceiptService handles receipt and item lifecycle. Every item-list
// mutation for a receipt goes through a per-receipt lock: the underlying
// update is a read-modify-write of the whole item array, and two concurrent
// callers would otherwise silently drop each other's edits.
type ReceiptService struct {
	receiptRepo *repository.ReceiptRepository
	settlement  *SettlementService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReceiptService creates a new receipt service
func NewReceiptService(settlement *SettlementService) *ReceiptService {
	return &ReceiptService{
		receiptRepo: repository.NewReceiptRepository(),
		settlement:  settlement,
		locks:       make(map[string]*sync.Mutex),
	}
}

// receiptLock returns the mutex serializing writes to one receipt
func (s *ReceiptService) receiptLock(receiptID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[receiptID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[receiptID] = lock
	}
	return lock
}

// CreateReceipt creates an empty receipt owned by paidTo
func (s *ReceiptService) CreateReceipt(groupID, name, paidTo string) (*models.Receipt, error) {
	group, err := GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	if !memberExists(group, paidTo) {
		return nil, utils.NewValidationError("paidTo must be a member of the group")
	}

	receipt := models.NewReceipt(utils.GenerateID(), groupID, name, paidTo)
	if err := s.receiptRepo.StoreReceipt(receipt); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return receipt, nil
}

// CreateReceiptWithItems creates a fully populated receipt in a single
// store, so a failure leaves no partial receipt behind
func (s *ReceiptService) CreateReceiptWithItems(groupID, name, paidTo string, sst, serviceCharge *float64, items []models.Item) (*models.Receipt, error) {
	group, err := GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	if !memberExists(group, paidTo) {
		return nil, utils.NewValidationError("paidTo must be a member of the group")
	}

	receipt := models.NewReceipt(utils.GenerateID(), groupID, name, paidTo)
	receipt.SST = sst
	receipt.ServiceCharge = serviceCharge
	receipt.Items = items
	if err := s.receiptRepo.StoreReceipt(receipt); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by id
func (s *ReceiptService) GetReceipt(receiptID string) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetReceipt(receiptID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if receipt == nil {
		return nil, utils.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetGroupReceipts retrieves all receipts for a group in creation order
func (s *ReceiptService) GetGroupReceipts(groupID string) ([]*models.Receipt, error) {
	receipts, err := s.receiptRepo.GetGroupReceipts(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt from a group
func (s *ReceiptService) DeleteReceipt(groupID, receiptID string) error {
	deleted, err := s.receiptRepo.DeleteReceipt(groupID, receiptID)
	if err != nil {
		return utils.NewInternalError("Failed to delete receipt")
	}
	if !deleted {
		return utils.NewNotFoundError("Receipt")
	}
	return nil
}

// UpdateSettings updates a receipt's name, owner and tax rates
func (s *ReceiptService) UpdateSettings(req *models.UpdateReceiptSettingsRequest) error {
	if err := utils.ValidatePercentage(req.SST, "sst"); err != nil {
		return err
	}
	if err := utils.ValidatePercentage(req.ServiceCharge, "service charge"); err != nil {
		return err
	}

	updated, err := s.receiptRepo.UpdateSettings(req.ReceiptID, req.Name, req.PaidTo, req.SST, req.ServiceCharge)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return utils.NewNotFoundError("Receipt")
	}
	return nil
}

// AddItem appends an item to a receipt
func (s *ReceiptService) AddItem(req *models.AddItemRequest) (*models.Receipt, error) {
	if err := utils.ValidateItemData(req.Name, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	item := models.Item{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		UserIDs:  req.UserIDs,
	}

	return s.mutateItems(req.ReceiptID, func(items []models.Item) ([]models.Item, error) {
		return append(items, item), nil
	})
}

// UpdateItem replaces the item at the given index. Reassigning consumers
// drops paid markers for members no longer consuming the item.
func (s *ReceiptService) UpdateItem(req *models.UpdateItemRequest) (*models.Receipt, error) {
	if err := utils.ValidateItemData(req.Name, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	return s.mutateItems(req.ReceiptID, func(items []models.Item) ([]models.Item, error) {
		if req.ItemIndex >= len(items) {
			return nil, utils.NewNotFoundError("Item")
		}
		existing := items[req.ItemIndex]
		items[req.ItemIndex] = models.Item{
			Name:           req.Name,
			Price:          req.Price,
			Quantity:       req.Quantity,
			UserIDs:        req.UserIDs,
			PaidByIDs:      retainPaidMarkers(existing.PaidByIDs, req.UserIDs),
			PaidTimestamps: retainTimestamps(existing.PaidTimestamps, req.UserIDs),
		}
		return items, nil
	})
}

// RemoveItem deletes the item at the given index
func (s *ReceiptService) RemoveItem(req *models.RemoveItemRequest) (*models.Receipt, error) {
	return s.mutateItems(req.ReceiptID, func(items []models.Item) ([]models.Item, error) {
		if req.ItemIndex >= len(items) {
			return nil, utils.NewNotFoundError("Item")
		}
		return append(items[:req.ItemIndex], items[req.ItemIndex+1:]...), nil
	})
}

// AssignItemUsers replaces the consumer set of the item at the given index
func (s *ReceiptService) AssignItemUsers(req *models.AssignItemUsersRequest) (*models.Receipt, error) {
	return s.mutateItems(req.ReceiptID, func(items []models.Item) ([]models.Item, error) {
		if req.ItemIndex >= len(items) {
			return nil, utils.NewNotFoundError("Item")
		}
		items[req.ItemIndex].UserIDs = req.UserIDs
		items[req.ItemIndex].PaidByIDs = retainPaidMarkers(items[req.ItemIndex].PaidByIDs, req.UserIDs)
		items[req.ItemIndex].PaidTimestamps = retainTimestamps(items[req.ItemIndex].PaidTimestamps, req.UserIDs)
		return items, nil
	})
}

// MarkPaid marks every share the member consumes on the receipt as settled
func (s *ReceiptService) MarkPaid(receiptID, memberID string) (*models.Receipt, error) {
	return s.mutateItems(receiptID, func(items []models.Item) ([]models.Item, error) {
		return s.settlement.MarkItemsPaid(items, memberID), nil
	})
}

// MarkUnpaid clears the member's paid markers on the receipt
func (s *ReceiptService) MarkUnpaid(receiptID, memberID string) (*models.Receipt, error) {
	return s.mutateItems(receiptID, func(items []models.Item) ([]models.Item, error) {
		return s.settlement.MarkItemsUnpaid(items, memberID), nil
	})
}

// mutateItems applies fn to the receipt's current item list and writes the
// result back, holding the receipt's lock across the read-modify-write.
func (s *ReceiptService) mutateItems(receiptID string, fn func([]models.Item) ([]models.Item, error)) (*models.Receipt, error) {
	lock := s.receiptLock(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.GetReceipt(receiptID)
	if err != nil {
		return nil, err
	}

	items, err := fn(receipt.Items)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.ReplaceItems(receiptID, items); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	receipt.Items = items
	return receipt, nil
}

// memberExists reports whether the member id belongs to the group
func memberExists(group *models.Group, memberID string) bool {
	for _, member := range group.Members {
		if member.ID == memberID {
			return true
		}
	}
	return false
}

// retainPaidMarkers keeps only paid markers whose member still consumes the item
func retainPaidMarkers(paidByIDs, userIDs []string) []string {
	var retained []string
	for _, id := range paidByIDs {
		if utils.ContainsID(userIDs, id) {
			retained = append(retained, id)
		}
	}
	return retained
}

// retainTimestamps keeps only timestamps for members still consuming the item
func retainTimestamps(timestamps map[string]int64, userIDs []string) map[string]int64 {
	if timestamps == nil {
		return nil
	}
	retained := make(map[string]int64)
	for id, ts := range timestamps {
		if utils.ContainsID(userIDs, id) {
			retained[id] = ts
		}
	}
	if len(retained) == 0 {
		return nil
	}
	return retained
}

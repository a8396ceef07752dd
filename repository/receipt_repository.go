// repository/receipt_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/evenly-app/evenly-backend/models"
)

// ReceiptRepository handles database operations for receipts and their items
type ReceiptRepository struct {
	DB *sql.DB
}

// NewReceiptRepository creates a new ReceiptRepository
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{
		DB: GetDB(),
	}
}

// StoreReceipt saves a receipt and its items to the database
func (r *ReceiptRepository) StoreReceipt(receipt *models.Receipt) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO receipts (id, group_id, name, paid_to, sst, service_charge, creation_time)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		receipt.ID, receipt.GroupID, receipt.Name, receipt.PaidTo,
		receipt.SST, receipt.ServiceCharge, receipt.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %v", err)
	}

	if err := insertItems(tx, receipt.ID, receipt.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// GetReceipt retrieves a receipt with its ordered item list
func (r *ReceiptRepository) GetReceipt(receiptID string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.DB.QueryRow(
		`SELECT id, group_id, name, paid_to, sst, service_charge, creation_time
         FROM receipts WHERE id = $1`,
		receiptID,
	).Scan(&receipt.ID, &receipt.GroupID, &receipt.Name, &receipt.PaidTo,
		&receipt.SST, &receipt.ServiceCharge, &receipt.CreationTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %v", err)
	}

	items, err := r.loadItems(receiptID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items

	return &receipt, nil
}

// GetGroupReceipts retrieves all receipts for a group in creation order
func (r *ReceiptRepository) GetGroupReceipts(groupID string) ([]*models.Receipt, error) {
	rows, err := r.DB.Query(
		`SELECT id, group_id, name, paid_to, sst, service_charge, creation_time
         FROM receipts WHERE group_id = $1 ORDER BY creation_time ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %v", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		var receipt models.Receipt
		err = rows.Scan(&receipt.ID, &receipt.GroupID, &receipt.Name, &receipt.PaidTo,
			&receipt.SST, &receipt.ServiceCharge, &receipt.CreationTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %v", err)
		}
		receipts = append(receipts, &receipt)
	}

	for _, receipt := range receipts {
		items, err := r.loadItems(receipt.ID)
		if err != nil {
			return nil, err
		}
		receipt.Items = items
	}

	return receipts, nil
}

// UpdateSettings updates a receipt's name, owner and tax rates
func (r *ReceiptRepository) UpdateSettings(receiptID, name, paidTo string, sst, serviceCharge *float64) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE receipts SET name = $1, paid_to = $2, sst = $3, service_charge = $4 WHERE id = $5",
		name, paidTo, sst, serviceCharge, receiptID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update receipt: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %v", err)
	}
	return affected > 0, nil
}

// ReplaceItems overwrites a receipt's full item list in one transaction
func (r *ReceiptRepository) ReplaceItems(receiptID string, items []models.Item) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM receipt_items WHERE receipt_id = $1", receiptID)
	if err != nil {
		return fmt.Errorf("failed to clear items: %v", err)
	}

	if err := insertItems(tx, receiptID, items); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteReceipt removes a receipt belonging to a group
func (r *ReceiptRepository) DeleteReceipt(groupID, receiptID string) (bool, error) {
	result, err := r.DB.Exec(
		"DELETE FROM receipts WHERE id = $1 AND group_id = $2",
		receiptID, groupID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete receipt: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %v", err)
	}
	return affected > 0, nil
}

// loadItems loads a receipt's items with their consumer and payer sets
func (r *ReceiptRepository) loadItems(receiptID string) ([]models.Item, error) {
	rows, err := r.DB.Query(
		`SELECT id, name, price, quantity FROM receipt_items
         WHERE receipt_id = $1 ORDER BY position ASC`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %v", err)
	}
	defer rows.Close()

	items := []models.Item{}
	var itemIDs []int
	for rows.Next() {
		var item models.Item
		var itemID int
		if err := rows.Scan(&itemID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %v", err)
		}
		items = append(items, item)
		itemIDs = append(itemIDs, itemID)
	}

	for i, itemID := range itemIDs {
		cRows, err := r.DB.Query(
			"SELECT member_id FROM item_consumers WHERE item_id = $1",
			itemID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item consumers: %v", err)
		}
		for cRows.Next() {
			var memberID string
			if err := cRows.Scan(&memberID); err != nil {
				cRows.Close()
				return nil, fmt.Errorf("failed to scan consumer: %v", err)
			}
			items[i].UserIDs = append(items[i].UserIDs, memberID)
		}
		cRows.Close()

		pRows, err := r.DB.Query(
			"SELECT member_id, paid_at FROM item_payers WHERE item_id = $1",
			itemID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item payers: %v", err)
		}
		for pRows.Next() {
			var memberID string
			var paidAt int64
			if err := pRows.Scan(&memberID, &paidAt); err != nil {
				pRows.Close()
				return nil, fmt.Errorf("failed to scan payer: %v", err)
			}
			items[i].PaidByIDs = append(items[i].PaidByIDs, memberID)
			if items[i].PaidTimestamps == nil {
				items[i].PaidTimestamps = make(map[string]int64)
			}
			items[i].PaidTimestamps[memberID] = paidAt
		}
		pRows.Close()
	}

	return items, nil
}

// insertItems writes an item list with consumer and payer rows inside tx
func insertItems(tx *sql.Tx, receiptID string, items []models.Item) error {
	for position, item := range items {
		var itemID int
		err := tx.QueryRow(
			`INSERT INTO receipt_items (receipt_id, position, name, price, quantity)
             VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			receiptID, position, item.Name, item.Price, item.Quantity,
		).Scan(&itemID)
		if err != nil {
			return fmt.Errorf("failed to insert item: %v", err)
		}

		for _, memberID := range item.UserIDs {
			_, err = tx.Exec(
				"INSERT INTO item_consumers (item_id, member_id) VALUES ($1, $2)",
				itemID, memberID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item consumer: %v", err)
			}
		}

		for _, memberID := range item.PaidByIDs {
			paidAt := item.PaidTimestamps[memberID]
			_, err = tx.Exec(
				"INSERT INTO item_payers (item_id, member_id, paid_at) VALUES ($1, $2, $3)",
				itemID, memberID, paidAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item payer: %v", err)
			}
		}
	}
	return nil
}

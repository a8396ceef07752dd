// repository/group_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/evenly-app/evenly-backend/models"
)

// GroupRepository handles database operations for groups and members
type GroupRepository struct {
	DB *sql.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		DB: GetDB(),
	}
}

// StoreGroup saves a new group to the database
func (r *GroupRepository) StoreGroup(group *models.Group) error {
	_, err := r.DB.Exec(
		"INSERT INTO groups (id, name, creation_time) VALUES ($1, $2, $3)",
		group.ID, group.Name, group.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %v", err)
	}
	return nil
}

// GetGroup retrieves a group with its ordered member list and receipt ids
func (r *GroupRepository) GetGroup(groupID string) (*models.Group, error) {
	var group models.Group
	err := r.DB.QueryRow(
		"SELECT id, name, creation_time FROM groups WHERE id = $1",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreationTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %v", err)
	}

	group.Members = []models.Member{}
	mRows, err := r.DB.Query(
		"SELECT id, name, creation_time FROM members WHERE group_id = $1 ORDER BY position ASC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %v", err)
	}
	defer mRows.Close()

	for mRows.Next() {
		var member models.Member
		if err := mRows.Scan(&member.ID, &member.Name, &member.CreationTime); err != nil {
			return nil, fmt.Errorf("failed to scan member: %v", err)
		}
		group.Members = append(group.Members, member)
	}

	group.ReceiptIDs = []string{}
	rRows, err := r.DB.Query(
		"SELECT id FROM receipts WHERE group_id = $1 ORDER BY creation_time ASC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt ids: %v", err)
	}
	defer rRows.Close()

	for rRows.Next() {
		var receiptID string
		if err := rRows.Scan(&receiptID); err != nil {
			return nil, fmt.Errorf("failed to scan receipt id: %v", err)
		}
		group.ReceiptIDs = append(group.ReceiptIDs, receiptID)
	}

	return &group, nil
}

// DeleteGroup removes a group; members and receipts cascade
func (r *GroupRepository) DeleteGroup(groupID string) (bool, error) {
	result, err := r.DB.Exec("DELETE FROM groups WHERE id = $1", groupID)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %v", err)
	}
	return affected > 0, nil
}

// AddMember appends a member to the end of the group's member list
func (r *GroupRepository) AddMember(groupID string, member models.Member) error {
	_, err := r.DB.Exec(
		`INSERT INTO members (id, group_id, name, position, creation_time)
         VALUES ($1, $2, $3,
                 (SELECT COALESCE(MAX(position), 0) + 1 FROM members WHERE group_id = $2),
                 $4)`,
		member.ID, groupID, member.Name, member.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %v", err)
	}
	return nil
}

// UpdateMember renames a member
func (r *GroupRepository) UpdateMember(groupID, memberID, name string) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE members SET name = $1 WHERE id = $2 AND group_id = $3",
		name, memberID, groupID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update member: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %v", err)
	}
	return affected > 0, nil
}

// RemoveMember deletes a member from a group. Item consumer and payer rows
// referencing the member are left in place; the settlement engine skips ids
// it no longer recognizes.
func (r *GroupRepository) RemoveMember(groupID, memberID string) (bool, error) {
	result, err := r.DB.Exec(
		"DELETE FROM members WHERE id = $1 AND group_id = $2",
		memberID, groupID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %v", err)
	}
	return affected > 0, nil
}

// services/group_service.go
package services

import (
	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/repository"
	"github.com/evenly-app/evenly-backend/utils"
)

var groupRepo *repository.GroupRepository

// InitGroupService initializes the group service
func InitGroupService() {
	groupRepo = repository.NewGroupRepository()
}

// CreateGroup creates and stores a new group
func CreateGroup(name string) (*models.Group, error) {
	if err := utils.ValidateRequired(name, "group name"); err != nil {
		return nil, err
	}

	group := models.NewGroup(utils.GenerateID(), name)
	if err := groupRepo.StoreGroup(group); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return group, nil
}

// GetGroup retrieves a group by id
func GetGroup(groupID string) (*models.Group, error) {
	group, err := groupRepo.GetGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	return group, nil
}

// DeleteGroup removes a group; its members and receipts cascade with it
func DeleteGroup(groupID string) error {
	deleted, err := groupRepo.DeleteGroup(groupID)
	if err != nil {
		return utils.NewInternalError("Failed to delete group")
	}
	if !deleted {
		return utils.NewNotFoundError("Group")
	}
	return nil
}

// AddMember appends a new member to a group's member list
func AddMember(groupID, name string) (*models.Member, error) {
	if err := utils.ValidateRequired(name, "member name"); err != nil {
		return nil, err
	}
	if _, err := GetGroup(groupID); err != nil {
		return nil, err
	}

	member := models.NewMember(utils.GenerateID(), name)
	if err := groupRepo.AddMember(groupID, member); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return &member, nil
}

// UpdateMember renames a member
func UpdateMember(groupID, memberID, name string) error {
	if err := utils.ValidateRequired(name, "member name"); err != nil {
		return err
	}

	updated, err := groupRepo.UpdateMember(groupID, memberID, name)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !updated {
		return utils.NewNotFoundError("Member")
	}
	return nil
}

// RemoveMember deletes a member from a group. Items keep any references to
// the removed id; the settlement engine ignores ids it no longer knows.
func RemoveMember(groupID, memberID string) error {
	removed, err := groupRepo.RemoveMember(groupID, memberID)
	if err != nil {
		return utils.NewInternalError("Failed to remove member")
	}
	if !removed {
		return utils.NewNotFoundError("Member")
	}
	return nil
}

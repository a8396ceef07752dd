package handlers

import (
	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/services"
	"github.com/evenly-app/evenly-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateGroup handles the creation of a new group
func CreateGroup(c *gin.Context) {
	var request models.CreateGroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	group, err := services.CreateGroup(request.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.CreateGroupResponse{GroupID: group.ID})
}

// GetGroup handles retrieving a group by id
func GetGroup(c *gin.Context) {
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

	utils.HandleSuccess(c, group)
}

// DeleteGroup removes a group and everything it owns
func DeleteGroup(c *gin.Context) {
	var request models.GroupIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if err := services.DeleteGroup(request.GroupID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// AddMember adds a member to a group
func AddMember(c *gin.Context) {
	var request models.AddMemberRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	member, err := services.AddMember(request.GroupID, request.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, member)
}

// UpdateMember renames a member
func UpdateMember(c *gin.Context) {
	var request models.UpdateMemberRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if err := services.UpdateMember(request.GroupID, request.MemberID, request.Name); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// RemoveMember deletes a member from a group
func RemoveMember(c *gin.Context) {
	var request models.RemoveMemberRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleBindingError(c)
		return
	}

	if err := services.RemoveMember(request.GroupID, request.MemberID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

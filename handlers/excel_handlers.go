package handlers

import (
	"fmt"
	"net/http"

	"github.com/evenly-app/evenly-backend/utils"

	"github.com/gin-gonic/gin"
)

// ExportGroup streams a settlement workbook for a group
func ExportGroup(c *gin.Context) {
	groupID := c.Param("groupId")

	f, filename, err := handlerServices.ExcelService.ExportGroupToExcel(groupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

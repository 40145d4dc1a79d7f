package handlers

import (
	"net/http"
	"time"

	"corpay/config"
	"corpay/utils"

	"github.com/gin-gonic/gin"
)

// IssueDevToken mints an operator token for local development. The
// route is not registered in production.
func IssueDevToken(c *gin.Context) {
	if config.IsProduction() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var body struct {
		OperatorID string `json:"operator_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OperatorID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "operator_id is required")
		return
	}
	token, err := utils.GenerateToken(body.OperatorID, "operator", 12*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/services"
)

type DebitRequest struct {
	Amount int64  `json:"amount" binding:"required,min=1"`
	Reason string `json:"reason" binding:"required"`
}

func GetBalance(c *gin.Context) {
	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	balance, err := services.BalanceOf(gormDB, accountID)
	if err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func ListLedger(c *gin.Context) {
	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	limit, _ := helpers.StringToInt(c.DefaultQuery("limit", "50"))
	entries, err := services.RecentEntries(gormDB, accountID, limit)
	if err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func DebitPoints(c *gin.Context) {
	var req DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	entry, err := services.DebitPoints(gormDB, accountID, req.Amount, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry_id":      entry.ID,
		"balance_after": entry.BalanceAfter,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/services"
)

// orders is the shared order service; it owns the product catalog cache.
var orders = services.NewOrderService()

func requestDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db.(*gorm.DB), true
}

func requestAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get("account_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in token.")
		return uuid.Nil, false
	}
	accountUUID, ok := accountID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID type.")
		return uuid.Nil, false
	}
	return accountUUID, true
}

// respondServiceError maps domain errors onto the HTTP status taxonomy.
// Anything unrecognized becomes a logged 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
	case errors.Is(err, services.ErrUnknownProduct):
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown product.")
	case errors.Is(err, services.ErrForbidden):
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to access this resource.")
	case errors.Is(err, services.ErrInvalidStatus):
		helpers.RespondWithError(c, http.StatusBadRequest, "Order is not in a valid status for this operation.")
	case errors.Is(err, services.ErrInvalidAmount):
		helpers.RespondWithError(c, http.StatusBadRequest, "Amount must be a positive integer.")
	case errors.Is(err, services.ErrInsufficientPoints):
		helpers.RespondWithError(c, http.StatusBadRequest, "Insufficient point balance.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Resource not found.")
	default:
		helpers.RespondInternalError(c, err)
	}
}

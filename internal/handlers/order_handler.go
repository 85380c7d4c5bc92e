package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/models"
	"github.com/jaeminyoo/homepoint/internal/services"
)

type CreateOrderRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type ConfirmRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID FAILED"`
}

func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	order, err := orders.CreateOrder(gormDB, accountID, req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID})
}

func CreateSession(c *gin.Context) {
	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	provider := os.Getenv("GATEWAY_PROVIDER")
	if provider == "" {
		provider = "mockpay"
	}
	baseURL := os.Getenv("GATEWAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://pay-sandbox.mockpay.kr"
	}

	redirectURL, err := orders.CreateSession(gormDB, orderID, accountID, provider, baseURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_url": redirectURL})
}

func GetOrder(c *gin.Context) {
	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	order, err := services.GetOrder(gormDB, orderID, accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":         order.ID,
		"product_id":       order.ProductID,
		"amount":           order.Amount,
		"status":           order.Status,
		"gateway_provider": order.GatewayProvider,
		"status_detail":    order.StatusDetail,
		"created_at":       order.CreatedAt,
		"updated_at":       order.UpdatedAt,
	})
}

// ConfirmPayment is the synchronous finalize adapter used by client test
// sessions against the mock gateway. Hidden entirely in production; the
// webhook is the only finalize path there.
func ConfirmPayment(c *gin.Context) {
	if os.Getenv("APP_ENV") == "production" {
		helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Status must be PAID or FAILED.")
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

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	// Ownership check before the transition; the webhook path has the
	// gateway signature instead.
	if _, err := services.GetOrder(gormDB, orderID, accountID); err != nil {
		respondServiceError(c, err)
		return
	}

	provider := os.Getenv("GATEWAY_PROVIDER")
	if provider == "" {
		provider = "mockpay"
	}

	detail := "confirmed by client test session"
	if req.Status == models.OrderStatusFailed {
		detail = "failed by client test session"
	}

	if err := services.Finalize(gormDB, orderID, req.Status, provider, detail); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

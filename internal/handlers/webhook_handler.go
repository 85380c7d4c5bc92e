package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/services"
)

type webhookPayload struct {
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	Provider     string `json:"provider"`
	StatusDetail string `json:"status_detail"`
}

// PaymentWebhook is the asynchronous finalize adapter. The gateway delivers
// at-least-once, so duplicates are expected and must come back 200; the
// idempotency guard inside Finalize makes that safe. Non-2xx responses make
// the gateway retry.
func PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to read request body.")
		return
	}

	// With a secret configured, verification is unconditional. Unsigned
	// deliveries are tolerated only in non-production with no secret set;
	// server startup enforces that production always has one.
	if secret := os.Getenv("WEBHOOK_SECRET"); secret != "" {
		signature := c.GetHeader(helpers.SignatureHeader)
		if !helpers.VerifyWebhookSignature(secret, body, signature) {
			log.Warn().Str("remote", c.ClientIP()).Msg("webhook signature mismatch")
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid webhook signature.")
			return
		}
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid webhook payload.")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	if err := services.Finalize(gormDB, orderID, payload.Status, payload.Provider, payload.StatusDetail); err != nil {
		respondServiceError(c, err)
		return
	}

	log.Info().
		Str("order_id", payload.OrderID).
		Str("status", payload.Status).
		Msg("webhook finalize accepted")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

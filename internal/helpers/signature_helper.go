package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

const SignatureHeader = "X-Webhook-Signature"

// SignWebhookPayload computes the signature the gateway is expected to send
// for a raw request body.
func SignWebhookPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "HMACSHA256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks a received signature header against the raw
// body using a constant-time comparison.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	expected := SignWebhookPayload(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

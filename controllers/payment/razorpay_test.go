package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret123")

	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	good := sign("secret123", orderID+"|"+paymentID)

	assert.True(t, VerifySignature(orderID, paymentID, good))
	assert.False(t, VerifySignature(orderID, paymentID, "deadbeef"))
	assert.False(t, VerifySignature(orderID, "pay_other", good))
}

func TestVerifySignature_MissingConfig(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	assert.False(t, VerifySignature("order", "pay", "sig"))
}

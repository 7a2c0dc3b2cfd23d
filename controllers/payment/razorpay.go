// Package paymentControllers holds the Razorpay gateway client: the outbound
// order-creation call and the signature checks used when callbacks come in.
package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
)

// RazorpayOrder is the gateway's representation of a created payment intent.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func getRazorpayConfig() (keyID, keySecret, apiURL string, err error) {
	keyID = os.Getenv("RAZORPAY_KEY_ID")
	keySecret = os.Getenv("RAZORPAY_KEY_SECRET")
	apiURL = os.Getenv("RAZORPAY_API_URL")
	if apiURL == "" {
		apiURL = "https://api.razorpay.com/v1"
	}
	if keyID == "" || keySecret == "" {
		return "", "", "", fmt.Errorf("razorpay configuration missing")
	}
	return keyID, keySecret, apiURL, nil
}

// CreateRazorpayOrder registers a payment intent with the gateway and returns
// the gateway order id the client needs to open checkout.
func CreateRazorpayOrder(orderRef string, amount float64, currency string) (string, error) {
	keyID, keySecret, apiURL, err := getRazorpayConfig()
	if err != nil {
		return "", err
	}
	if currency == "" {
		currency = "INR"
	}

	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)), // rupees to paise
		"currency": currency,
		"receipt":  orderRef,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, apiURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(keyID, keySecret)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Razorpay: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var rerr razorpayError
		if json.Unmarshal(body, &rerr) == nil && rerr.Error.Description != "" {
			return "", fmt.Errorf("razorpay error: %s", rerr.Error.Description)
		}
		return "", fmt.Errorf("razorpay API error (%d): %s", resp.StatusCode, string(body))
	}

	var order RazorpayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return "", fmt.Errorf("failed to parse Razorpay response: %v", err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("razorpay returned empty order id")
	}
	return order.ID, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(key_secret, razorpayOrderID + "|" + razorpayPaymentID).
func VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	_, keySecret, _, err := getRazorpayConfig()
	if err != nil {
		return false
	}
	return verifyHMAC(keySecret, razorpayOrderID+"|"+razorpayPaymentID, signature)
}

func verifyHMAC(secret, message, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

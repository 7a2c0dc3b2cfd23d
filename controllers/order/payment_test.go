package orderControllers

import (
	"testing"

	"github.com/rajat290/obeyyo-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCallbackPaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusFailed, callbackPaymentStatus("failed"))
	assert.Equal(t, models.PaymentStatusFailed, callbackPaymentStatus("FAILED"))
	assert.Equal(t, models.PaymentStatusPaid, callbackPaymentStatus("captured"))
	assert.Equal(t, models.PaymentStatusPaid, callbackPaymentStatus(""))
}

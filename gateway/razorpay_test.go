package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	r := &Razorpay{Key: "rzp_test_key", Secret: "test_secret"}

	h := hmac.New(sha256.New, []byte(r.Secret))
	h.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(h.Sum(nil))

	assert.True(t, r.VerifyPaymentSignature("order_abc", "pay_xyz", valid))
	assert.False(t, r.VerifyPaymentSignature("order_abc", "pay_xyz", "forged"))
	assert.False(t, r.VerifyPaymentSignature("order_abc", "pay_other", valid))
	assert.False(t, r.VerifyPaymentSignature("order_abc", "pay_xyz", ""))
}

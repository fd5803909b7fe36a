package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay implements the same adapter contract for the Razorpay gateway.
// Razorpay uses a client-side checkout, so CreatePayment returns no
// redirect URL; the frontend opens the checkout with the returned order id
// and the payment is verified by signature on return.
type Razorpay struct {
	Key    string
	Secret string
}

// NewRazorpay builds the adapter from environment configuration
func NewRazorpay() *Razorpay {
	return &Razorpay{
		Key:    os.Getenv("RAZORPAY_KEY"),
		Secret: os.Getenv("RAZORPAY_SECRET"),
	}
}

// Name returns the gateway identifier
func (r *Razorpay) Name() string { return models.GatewayRazorpay }

// CreatePayment creates a Razorpay order for the amount due
func (r *Razorpay) CreatePayment(order *models.Order, user *models.User, description string) (*CreateResult, error) {
	client := razorpay.NewClient(r.Key, r.Secret)
	orderData := map[string]interface{}{
		"amount":          order.FinalAmount,
		"currency":        "INR",
		"receipt":         fmt.Sprintf("order_rcptid_%d", order.ID),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable, err.Error())
	}

	return &CreateResult{
		AppTransID: fmt.Sprintf("%v", rzOrder["id"]),
		RawRequest: fmt.Sprintf("receipt=order_rcptid_%d&amount=%d", order.ID, order.FinalAmount),
	}, nil
}

// VerifyPaymentSignature checks the signature Razorpay returns to the
// frontend after a successful checkout: HMAC-SHA256 over
// "{orderID}|{paymentID}" with the key secret.
func (r *Razorpay) VerifyPaymentSignature(rzOrderID, rzPaymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(r.Secret))
	h.Write([]byte(rzOrderID + "|" + rzPaymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
)

// ZaloPay signs outbound requests with key1 and verifies inbound callbacks
// with key2. The two keys are distinct by protocol and must never be
// swapped.
type ZaloPay struct {
	AppID       string
	Key1        string
	Key2        string
	Endpoint    string
	CallbackURL string
	Client      *http.Client
}

// NewZaloPay builds the adapter from environment configuration. The HTTP
// client carries a bounded timeout; a timed-out creation call is a failed
// creation, the order stays Pending and is safely retryable.
func NewZaloPay() *ZaloPay {
	endpoint := os.Getenv("ZALOPAY_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://sb-openapi.zalopay.vn/v2"
	}
	return &ZaloPay{
		AppID:       os.Getenv("ZALOPAY_APP_ID"),
		Key1:        os.Getenv("ZALOPAY_KEY1"),
		Key2:        os.Getenv("ZALOPAY_KEY2"),
		Endpoint:    endpoint,
		CallbackURL: os.Getenv("ZALOPAY_CALLBACK_URL"),
		Client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the gateway identifier
func (z *ZaloPay) Name() string { return models.GatewayZaloPay }

// AppTransID builds the deterministic app-scoped transaction id for an
// order: {yymmdd}_{orderID}. Re-issuing a payment link for the same pending
// order on the same day produces the same id, which makes re-creation
// idempotent at the gateway.
func AppTransID(t time.Time, orderID uint) string {
	return fmt.Sprintf("%s_%d", t.Format("060102"), orderID)
}

// OrderIDFromAppTransID recovers the internal order id from an app-scoped
// transaction id.
func OrderIDFromAppTransID(appTransID string) (uint, error) {
	parts := strings.SplitN(appTransID, "_", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed app_trans_id: %q", appTransID)
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed app_trans_id: %q", appTransID)
	}
	return uint(id), nil
}

func hmacSHA256(key, data string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// SignCreateMac computes the outbound request MAC over the canonical field
// order app_id|app_trans_id|app_user|amount|app_time|embed_data|item using
// the private signing key.
func (z *ZaloPay) SignCreateMac(appTransID, appUser string, amount, appTime int64, embedData, item string) string {
	data := fmt.Sprintf("%s|%s|%s|%d|%d|%s|%s",
		z.AppID, appTransID, appUser, amount, appTime, embedData, item)
	return hmacSHA256(z.Key1, data)
}

// VerifyCallbackMac re-derives the callback MAC over the raw data field
// using the callback-verification key and compares in constant time.
func (z *ZaloPay) VerifyCallbackMac(data, mac string) bool {
	expected := hmacSHA256(z.Key2, data)
	return hmac.Equal([]byte(expected), []byte(mac))
}

type zaloPayItem struct {
	Name     string `json:"itemname"`
	Quantity int    `json:"itemquantity"`
	Price    int64  `json:"itemprice"`
}

type createResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	SubReturnCode int    `json:"sub_return_code"`
	OrderURL      string `json:"order_url"`
	ZpTransToken  string `json:"zp_trans_token"`
}

// CreatePayment issues the signed payment-creation request and returns the
// redirect URL the user pays at. Network failures and gateway rejections
// surface to the caller unretried.
func (z *ZaloPay) CreatePayment(order *models.Order, user *models.User, description string) (*CreateResult, error) {
	now := time.Now()
	appTransID := AppTransID(now, order.ID)
	appUser := fmt.Sprintf("user_%d", order.UserID)
	appTime := now.UnixMilli()

	embedData, err := json.Marshal(map[string]interface{}{
		"order_code":  order.OrderCode,
		"redirecturl": os.Getenv("FRONTEND_URL"),
	})
	if err != nil {
		return nil, err
	}

	items := make([]zaloPayItem, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		items = append(items, zaloPayItem{Name: it.Food.Name, Quantity: it.Quantity, Price: it.Price})
	}
	itemJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	mac := z.SignCreateMac(appTransID, appUser, order.FinalAmount, appTime, string(embedData), string(itemJSON))

	form := url.Values{}
	form.Set("app_id", z.AppID)
	form.Set("app_trans_id", appTransID)
	form.Set("app_user", appUser)
	form.Set("app_time", strconv.FormatInt(appTime, 10))
	form.Set("amount", strconv.FormatInt(order.FinalAmount, 10))
	form.Set("embed_data", string(embedData))
	form.Set("item", string(itemJSON))
	form.Set("description", description)
	form.Set("callback_url", z.CallbackURL)
	form.Set("mac", mac)

	resp, err := z.Client.PostForm(z.Endpoint+"/create", form)
	if err != nil {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable,
			fmt.Sprintf("create returned HTTP %d", resp.StatusCode))
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable, "malformed create response")
	}
	if created.ReturnCode != 1 {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable,
			fmt.Sprintf("create rejected: %s (sub code %d)", created.ReturnMessage, created.SubReturnCode))
	}

	return &CreateResult{
		RedirectURL: created.OrderURL,
		AppTransID:  appTransID,
		RawRequest:  form.Encode(),
	}, nil
}

// CallbackEnvelope is the wire shape of an inbound ZaloPay callback.
type CallbackEnvelope struct {
	Data string `json:"data"`
	Mac  string `json:"mac"`
	Type int    `json:"type"`
}

// CallbackData is the verified, decoded payload of a callback.
type CallbackData struct {
	AppID      int    `json:"app_id"`
	AppTransID string `json:"app_trans_id"`
	AppUser    string `json:"app_user"`
	AppTime    int64  `json:"app_time"`
	Amount     int64  `json:"amount"`
	EmbedData  string `json:"embed_data"`
	Item       string `json:"item"`
	ZpTransID  int64  `json:"zp_trans_id"`
	ServerTime int64  `json:"server_time"`
	Channel    int    `json:"channel"`
}

// ParseCallback verifies the envelope MAC with the callback key and decodes
// the embedded data. A MAC mismatch returns ErrSignatureVerification; the
// caller still acknowledges receipt to the gateway.
func (z *ZaloPay) ParseCallback(body []byte) (*CallbackData, error) {
	var envelope CallbackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed callback envelope: %w", err)
	}
	if !z.VerifyCallbackMac(envelope.Data, envelope.Mac) {
		return nil, utils.ErrSignatureVerification
	}
	var data CallbackData
	if err := json.Unmarshal([]byte(envelope.Data), &data); err != nil {
		return nil, fmt.Errorf("malformed callback data: %w", err)
	}
	return &data, nil
}

// QueryResult is the authoritative transaction status returned by the
// gateway's query endpoint.
type QueryResult struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	IsProcessing  bool   `json:"is_processing"`
	Amount        int64  `json:"amount"`
	ZpTransID     int64  `json:"zp_trans_id"`
}

// Paid reports whether the gateway settled the transaction.
func (q *QueryResult) Paid() bool {
	return q.ReturnCode == 1 && !q.IsProcessing
}

// Failed reports whether the gateway terminally rejected the transaction.
// A still-processing transaction is neither paid nor failed.
func (q *QueryResult) Failed() bool {
	return q.ReturnCode == 2
}

// QueryTransaction polls the gateway for the status of an app transaction.
// Used as the manual fallback when no callback arrived within the expected
// window.
func (z *ZaloPay) QueryTransaction(appTransID string) (*QueryResult, error) {
	mac := hmacSHA256(z.Key1, fmt.Sprintf("%s|%s|%s", z.AppID, appTransID, z.Key1))

	form := url.Values{}
	form.Set("app_id", z.AppID)
	form.Set("app_trans_id", appTransID)
	form.Set("mac", mac)

	resp, err := z.Client.PostForm(z.Endpoint+"/query", form)
	if err != nil {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable,
			fmt.Sprintf("query returned HTTP %d", resp.StatusCode))
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, utils.WrapError(utils.ErrGatewayUnavailable, "malformed query response")
	}
	return &result, nil
}

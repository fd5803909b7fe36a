package gateway

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZaloPay() *ZaloPay {
	return &ZaloPay{
		AppID:       "2553",
		Key1:        "PcY4iZIKFCIdgZvA6ueMcMHHUbRLYjPL",
		Key2:        "kLtgPl8HHhfvMuDHPwKfgfsY4Ydm9eIz",
		Endpoint:    "https://sb-openapi.zalopay.vn/v2",
		CallbackURL: "https://example.com/v1/payment/zalopay/callback",
	}
}

func TestAppTransIDDeterministic(t *testing.T) {
	day := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	first := AppTransID(day, 412)
	second := AppTransID(day.Add(5*time.Hour), 412)

	assert.Equal(t, "260901_412", first)
	// Re-issuing later the same day produces the same id, which is what
	// makes payment initiation idempotent at the gateway.
	assert.Equal(t, first, second)

	nextDay := AppTransID(day.AddDate(0, 0, 1), 412)
	assert.Equal(t, "260902_412", nextDay)
}

func TestOrderIDFromAppTransID(t *testing.T) {
	id, err := OrderIDFromAppTransID("260901_412")
	require.NoError(t, err)
	assert.Equal(t, uint(412), id)

	_, err = OrderIDFromAppTransID("garbage")
	assert.Error(t, err)

	_, err = OrderIDFromAppTransID("260901_notanumber")
	assert.Error(t, err)
}

func TestSignCreateMac(t *testing.T) {
	z := testZaloPay()

	mac := z.SignCreateMac("260901_412", "user_7", 195000, 1756722600000, "{}", "[]")

	raw := fmt.Sprintf("%s|260901_412|user_7|195000|1756722600000|{}|[]", z.AppID)
	assert.Equal(t, hmacSHA256(z.Key1, raw), mac)
	// Signed with key1, not the callback key.
	assert.NotEqual(t, hmacSHA256(z.Key2, raw), mac)
}

func TestParseCallback(t *testing.T) {
	z := testZaloPay()

	data := CallbackData{
		AppTransID: "260901_412",
		Amount:     195000,
		ZpTransID:  240901000000123,
	}
	dataJSON, err := json.Marshal(data)
	require.NoError(t, err)

	envelope := CallbackEnvelope{
		Data: string(dataJSON),
		Mac:  hmacSHA256(z.Key2, string(dataJSON)),
		Type: 1,
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	parsed, err := z.ParseCallback(body)
	require.NoError(t, err)
	assert.Equal(t, "260901_412", parsed.AppTransID)
	assert.Equal(t, int64(195000), parsed.Amount)
	assert.Equal(t, int64(240901000000123), parsed.ZpTransID)
}

func TestParseCallbackRejectsBadMac(t *testing.T) {
	z := testZaloPay()

	data := `{"app_trans_id":"260901_412","zp_trans_id":1}`
	envelope := CallbackEnvelope{
		Data: data,
		Mac:  hmacSHA256("wrong-key", data),
		Type: 1,
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	_, err = z.ParseCallback(body)
	assert.ErrorIs(t, err, utils.ErrSignatureVerification)
}

func TestParseCallbackRejectsTamperedData(t *testing.T) {
	z := testZaloPay()

	data := `{"app_trans_id":"260901_412","amount":195000}`
	mac := hmacSHA256(z.Key2, data)

	tampered := `{"app_trans_id":"260901_412","amount":1}`
	body, err := json.Marshal(CallbackEnvelope{Data: tampered, Mac: mac, Type: 1})
	require.NoError(t, err)

	_, err = z.ParseCallback(body)
	assert.ErrorIs(t, err, utils.ErrSignatureVerification)
}

func TestParseCallbackRejectsMalformedBody(t *testing.T) {
	z := testZaloPay()
	_, err := z.ParseCallback([]byte("not json"))
	assert.Error(t, err)
}

func TestQueryResultStates(t *testing.T) {
	paid := QueryResult{ReturnCode: 1, IsProcessing: false}
	assert.True(t, paid.Paid())
	assert.False(t, paid.Failed())

	processing := QueryResult{ReturnCode: 1, IsProcessing: true}
	assert.False(t, processing.Paid())
	assert.False(t, processing.Failed())

	failed := QueryResult{ReturnCode: 2}
	assert.False(t, failed.Paid())
	assert.True(t, failed.Failed())

	pending := QueryResult{ReturnCode: 3}
	assert.False(t, pending.Paid())
	assert.False(t, pending.Failed())
}

package idpay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateResult_SuccessComesFromStatus(t *testing.T) {
	body := []byte(`{"id":"42ec0e0b","link":"  https://idpay.ir/p/ws/42ec0e0b  "}`)

	res, err := decodeCreateResult(201, body)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "42ec0e0b", res.ID)
	assert.Equal(t, "https://idpay.ir/p/ws/42ec0e0b", res.Link, "payment link is trimmed")

	// a well-formed body does not make a non-201 reply a success
	res, err = decodeCreateResult(400, body)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestDecodeCreateResult_CarriesErrorFields(t *testing.T) {
	body := []byte(`{"error_code":34,"error_message":"minimum amount is 1000 Rials"}`)

	res, err := decodeCreateResult(406, body)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 34, res.ErrorCode)
	assert.Equal(t, "minimum amount is 1000 Rials", res.ErrorMessage)
}

func TestEncodeCreate_AbsentOptionalsAsEmptyStrings(t *testing.T) {
	v, err := validRequest().Validate()
	require.NoError(t, err)

	raw, err := json.Marshal(encodeCreate(v))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	for _, key := range []string{"name", "phone", "mail", "desc"} {
		val, ok := m[key]
		require.True(t, ok, "key %q must be present even when unset", key)
		assert.Equal(t, "", val, "key %q must encode as empty string", key)
	}
	assert.Equal(t, "ORD-1", m["order_id"])
	assert.Equal(t, float64(10000), m["amount"])
	assert.Equal(t, "https://shop.example.com/idpay/callback", m["callback"])
}

func TestEncodeList_OmitsUnsetFilters(t *testing.T) {
	raw, err := json.Marshal(encodeList(TransactionListQuery{Page: 0, PageSize: 25}))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, map[string]interface{}{
		"page":      float64(0),
		"page_size": float64(25),
	}, m)
}

func TestEncodeList_FilterKeys(t *testing.T) {
	q := TransactionListQuery{
		Page:         1,
		PageSize:     50,
		OrderID:      "ORD-1",
		Amount:       420000,
		Statuses:     []Status{StatusVerified, StatusSettled},
		TrackID:      "884426",
		CardNo:       "6219861034529999",
		HashedCardNo: "a1b2c3",
		PaymentDate:  &DateRange{Min: 1563000000, Max: 1563100000},
	}

	raw, err := json.Marshal(encodeList(q))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, "ORD-1", m["order_id"])
	assert.Equal(t, float64(420000), m["amount"])
	assert.Equal(t, []interface{}{float64(100), float64(200)}, m["status"])
	assert.Equal(t, "884426", m["track_id"])
	assert.Equal(t, "6219861034529999", m["payment_card_no"])
	assert.Equal(t, "a1b2c3", m["payment_hashed_card_no"])
	assert.Equal(t, map[string]interface{}{"min": float64(1563000000), "max": float64(1563100000)}, m["payment_date"])
	assert.NotContains(t, m, "settlement_date")
	assert.NotContains(t, m, "id")
}

func TestAmountDecode_Tolerant(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Amount
		ok   bool
	}{
		{"number", `420000`, 420000, true},
		{"quoted number", `"420000"`, 420000, true},
		{"null", `null`, 0, true},
		{"fraction", `420000.5`, 0, false},
		{"quoted fraction", `"420000.5"`, 0, false},
		{"garbage", `"a lot"`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.raw), &a)
			if !tt.ok {
				assert.Error(t, err, "fractional or malformed amounts are a decode error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestDecodeTransaction(t *testing.T) {
	raw := []byte(`{
		"status": 100,
		"track_id": 884426,
		"id": "42ec0e0b",
		"order_id": "ORD-1",
		"amount": "420000",
		"date": "1563024000",
		"payment": {
			"track_id": 88444,
			"amount": 420000,
			"card_no": "621986****9999",
			"hashed_card_no": "a1b2c3d4",
			"date": 1563024000
		},
		"verify": {"date": 1563024060},
		"wage": {"by": "payee", "type": "amount", "amount": 5000},
		"settlement": null
	}`)

	tx, err := decodeTransaction(raw)
	require.NoError(t, err)

	assert.Equal(t, StatusVerified, tx.Status)
	assert.Equal(t, "verified", tx.Status.String())
	assert.Equal(t, int64(884426), tx.TrackID)
	assert.Equal(t, "42ec0e0b", tx.ID)
	assert.Equal(t, "ORD-1", tx.OrderID)
	assert.Equal(t, Amount(420000), tx.Amount, "quoted amounts decode")
	assert.Equal(t, Epoch(1563024000), tx.Date)
	assert.Equal(t, "621986****9999", tx.Payment.CardNo)
	require.NotNil(t, tx.Verify)
	assert.Equal(t, Epoch(1563024060), tx.Verify.Date)
	require.NotNil(t, tx.Wage)
	assert.Equal(t, "payee", tx.Wage.By)
	assert.Nil(t, tx.Payer)
	assert.Nil(t, tx.Settlement)
}

func TestDecodeTransactionList(t *testing.T) {
	raw := []byte(`{
		"total": 2,
		"page": 0,
		"page_size": 25,
		"records": [
			{"status": 200, "id": "a", "order_id": "ORD-1", "amount": 420000},
			{"status": 7, "id": "b", "order_id": "ORD-2", "amount": "10000"}
		]
	}`)

	list, err := decodeTransactionList(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Records, 2)
	assert.Equal(t, StatusSettled, list.Records[0].Status)
	assert.Equal(t, StatusCancelled, list.Records[1].Status)
	assert.Equal(t, Amount(10000), list.Records[1].Amount)
}

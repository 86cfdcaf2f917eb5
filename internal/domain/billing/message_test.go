package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      *Message
		wantError bool
		errorType error
	}{
		{
			name: "正常系: 整数文字列の金額",
			raw:  `{"billing_id":"bill_123","merchant_code":"merchant_456","user_code":"user_789","direct_debit_id":"debit_101","amount":"1000"}`,
			want: &Message{
				BillingID:     "bill_123",
				MerchantCode:  "merchant_456",
				UserCode:      "user_789",
				DirectDebitID: "debit_101",
				Amount:        "1000",
			},
		},
		{
			name: "正常系: 小数文字列の金額は切り捨て",
			raw:  `{"billing_id":"bill_123","merchant_code":"merchant_456","user_code":"user_789","direct_debit_id":"debit_101","amount":"1000.99"}`,
			want: &Message{
				BillingID:     "bill_123",
				MerchantCode:  "merchant_456",
				UserCode:      "user_789",
				DirectDebitID: "debit_101",
				Amount:        "1000",
			},
		},
		{
			name: "正常系: JSON数値の金額",
			raw:  `{"billing_id":"b1","merchant_code":"m1","user_code":"u1","direct_debit_id":"42","amount":500.75}`,
			want: &Message{
				BillingID:     "b1",
				MerchantCode:  "m1",
				UserCode:      "u1",
				DirectDebitID: "42",
				Amount:        "500",
			},
		},
		{
			name: "正常系: 末尾ゼロの小数",
			raw:  `{"billing_id":"b1","merchant_code":"m1","user_code":"u1","direct_debit_id":"42","amount":"500.00"}`,
			want: &Message{
				BillingID:     "b1",
				MerchantCode:  "m1",
				UserCode:      "u1",
				DirectDebitID: "42",
				Amount:        "500",
			},
		},
		{
			name:      "異常系: JSONとして不正なペイロード",
			raw:       `invalid json`,
			wantError: true,
			errorType: ErrMalformedPayload,
		},
		{
			name:      "異常系: 必須フィールド不足",
			raw:       `{"billing_id":"bill_123","merchant_code":"merchant_456"}`,
			wantError: true,
			errorType: ErrMissingField,
		},
		{
			name:      "異常系: nullフィールド",
			raw:       `{"billing_id":"bill_123","merchant_code":null,"user_code":"user_789","direct_debit_id":"debit_101","amount":"1000"}`,
			wantError: true,
			errorType: ErrNullField,
		},
		{
			name:      "異常系: 数値として解釈できない金額",
			raw:       `{"billing_id":"bill_123","merchant_code":"merchant_456","user_code":"user_789","direct_debit_id":"debit_101","amount":"invalid_amount"}`,
			wantError: true,
			errorType: ErrInvalidAmount,
		},
		{
			name:      "異常系: 金額が文字列でも数値でもない",
			raw:       `{"billing_id":"bill_123","merchant_code":"merchant_456","user_code":"user_789","direct_debit_id":"debit_101","amount":["1000"]}`,
			wantError: true,
			errorType: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, original, err := ParseMessage([]byte(tt.raw))

			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errorType)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, original)
			assert.Contains(t, original, "billing_id")
		})
	}
}

func TestParseMessage_ErrorNamesField(t *testing.T) {
	_, _, err := ParseMessage([]byte(`{"billing_id":"b1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merchant_code")

	_, _, err = ParseMessage([]byte(`{"billing_id":"b1","merchant_code":"m1","user_code":null,"direct_debit_id":"42","amount":"100"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_code")
}

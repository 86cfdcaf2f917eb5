package billing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// requiredFields 請求メッセージの必須フィールド（検証順）
var requiredFields = []string{
	"billing_id",
	"merchant_code",
	"user_code",
	"direct_debit_id",
	"amount",
}

// Message 検証済みの請求メッセージ
//
// Amountは小数部を切り捨てた整数文字列に正規化済み。
type Message struct {
	BillingID     string
	MerchantCode  string
	UserCode      string
	DirectDebitID string
	Amount        string
}

// ParseMessage キュー経由で受信したペイロードを検証・正規化する
//
// 検証済みメッセージと、パース直後の元構造を返す。
// 外部への副作用は一切持たない。
func ParseMessage(raw []byte) (*Message, map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	for _, field := range requiredFields {
		value, ok := data[field]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
		if value == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrNullField, field)
		}
	}

	amount, err := normalizeAmount(data["amount"])
	if err != nil {
		return nil, nil, err
	}

	msg := &Message{
		BillingID:     fieldString(data["billing_id"]),
		MerchantCode:  fieldString(data["merchant_code"]),
		UserCode:      fieldString(data["user_code"]),
		DirectDebitID: fieldString(data["direct_debit_id"]),
		Amount:        amount,
	}
	return msg, data, nil
}

// normalizeAmount 金額を整数文字列に正規化する
//
// 数値文字列・JSON数値のどちらも受け付け、小数部は0方向に切り捨てる
// ("1000.99" → "1000")。数値として解釈できない入力はErrInvalidAmount。
func normalizeAmount(value interface{}) (string, error) {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case json.Number:
		text = v.String()
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, value)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, text)
	}

	return d.Truncate(0).String(), nil
}

// fieldString フィールド値を文字列表現に揃える
func fieldString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

package billing

import "errors"

var (
	// ErrMalformedPayload ペイロードがJSONとして解釈できないエラー
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrMissingField 必須フィールドが存在しないエラー
	ErrMissingField = errors.New("missing required field")
	// ErrNullField 必須フィールドがnullであるエラー
	ErrNullField = errors.New("field cannot be null")
	// ErrInvalidAmount 金額が数値として解釈できないエラー
	ErrInvalidAmount = errors.New("invalid amount")
)

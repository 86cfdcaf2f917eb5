package debit

import "errors"

var (
	// ErrInvalidRequest メッセージから口座振替リクエストを組み立てられないエラー
	ErrInvalidRequest = errors.New("invalid debit request")
	// ErrTransport ネットワークレベルの送信失敗（接続拒否・タイムアウト・DNS）
	ErrTransport = errors.New("debit transport failure")
	// ErrMalformedResponse 受信したレスポンスボディがJSONとして解釈できないエラー
	ErrMalformedResponse = errors.New("malformed debit response")
)

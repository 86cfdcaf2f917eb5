package settlement

import "net/http"

// 処理結果の本文（呼び出し元のキュー転送コラボレータへ返す）
const (
	// ResultBodySuccess 1件のレコードを処理し決済が確定した
	ResultBodySuccess = "successed success_count / num_records = 1 / 1"
	// ResultBodyFailure 処理が失敗した（決済失敗・ネットワーク障害・不正メッセージ）
	ResultBodyFailure = "error: APIRequestに失敗しました"
)

// ProcessResult 1レコード処理の結果
//
// Settledは決済が確定したかを表す。StatusCodeとBodyはそのまま
// レスポンスとして返却できる形式。
type ProcessResult struct {
	Settled    bool
	StatusCode int
	Body       string
}

func successResult() *ProcessResult {
	return &ProcessResult{
		Settled:    true,
		StatusCode: http.StatusOK,
		Body:       ResultBodySuccess,
	}
}

func failureResult() *ProcessResult {
	return &ProcessResult{
		Settled:    false,
		StatusCode: http.StatusInternalServerError,
		Body:       ResultBodyFailure,
	}
}

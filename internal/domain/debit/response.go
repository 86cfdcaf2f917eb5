package debit

import "context"

// StatusSuccess プロバイダのボディstatusが示す成功値
const StatusSuccess = 1

// Response プロバイダが返すJSONボディ
//
// statusとerr以外の履歴用フィールドは任意項目。欠損はポインタのnilとして
// 表現し、履歴行にはNULLとして記録する（暗黙のデフォルトを持たせない）。
type Response struct {
	Status        *int       `json:"status"`
	Err           *ErrorBody `json:"err"`
	RequestID     *string    `json:"request_id"`
	Amount        *int64     `json:"amount"`
	Tax           *int64     `json:"tax"`
	ShipFee       *int64     `json:"ship_fee"`
	CustomCode    *string    `json:"custom_code"`
	NextTransfer  *string    `json:"next_transfer"`
	TransferType  *int       `json:"transfer_type"`
	TransferCount *int64     `json:"transfer_count"`
	ItemCode      *string    `json:"item_code"`
}

// ErrorBody プロバイダの失敗レスポンスに含まれるエラー情報
type ErrorBody struct {
	EC string `json:"ec"`
}

// Settled ボディのstatusが成功を示しているか
func (r *Response) Settled() bool {
	return r.Status != nil && *r.Status == StatusSuccess
}

// ErrorCode err.ecのエラーコードを返す（欠損時は空文字列）
func (r *Response) ErrorCode() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.EC
}

// Result HTTP呼び出しの結果
//
// OKはHTTPステータスの成否のみを表す。ボディ内のstatusの解釈は
// 呼び出し側（Outcome Coordinator）の責務。
type Result struct {
	OK         bool
	StatusCode int
	Body       []byte
	Response   *Response
}

// Client 口座振替プロバイダへの送信クライアント
type Client interface {
	Do(ctx context.Context, req Request) (*Result, error)
}

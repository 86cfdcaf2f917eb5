package ledger

import (
	"context"

	"debit-worker/internal/domain/debit"
)

// 請求レコードのステータスフラグ
const (
	// BillingPending 請求処理待ち
	BillingPending = "1"
	// BillingFinished 請求処理完了
	BillingFinished = "2"
	// SettlementSuccess 決済成功
	SettlementSuccess = "1"
	// SettlementFailure 決済失敗
	SettlementFailure = "2"
)

// HistoryRecord TBL_DEBITHISTORYへ追記する履歴行
//
// ポインタのフィールドはプロバイダレスポンスの任意項目で、nilはNULLとして
// 記録される。
type HistoryRecord struct {
	RequestID     *string
	MerchantCode  string
	UserCode      string
	Amount        *int64
	Tax           *int64
	ShipFee       *int64
	CustomCode    *string
	NextTransfer  *string
	TransferType  *int
	TransferCount *int64
	Status        *int
	ItemCode      *string
}

// HistoryFromResponse プロバイダレスポンスから履歴行を組み立てる
func HistoryFromResponse(resp *debit.Response, merchantCode, userCode string) *HistoryRecord {
	return &HistoryRecord{
		RequestID:     resp.RequestID,
		MerchantCode:  merchantCode,
		UserCode:      userCode,
		Amount:        resp.Amount,
		Tax:           resp.Tax,
		ShipFee:       resp.ShipFee,
		CustomCode:    resp.CustomCode,
		NextTransfer:  resp.NextTransfer,
		TransferType:  resp.TransferType,
		TransferCount: resp.TransferCount,
		Status:        resp.Status,
		ItemCode:      resp.ItemCode,
	}
}

// Store 請求レコードと口座振替履歴の永続化
//
// 各操作はストレージ障害を内部でログに記録し、成否をbooleanで返す。
// 確定済みの振替結果をストレージ障害で上書きしないための分離境界であり、
// エラーは呼び出し側へ伝播しない。
type Store interface {
	// RecordDebitHistory 履歴行を1件追記する
	RecordDebitHistory(ctx context.Context, rec *HistoryRecord) bool
	// MarkSettled 請求処理待ちのレコードを決済成功として確定する
	MarkSettled(ctx context.Context, merchantCode, userCode string) bool
	// MarkFailed 請求処理待ちのレコードを決済失敗として確定する
	MarkFailed(ctx context.Context, merchantCode, userCode, errorCode string) bool
}

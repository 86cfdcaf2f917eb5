package debit

import (
	"fmt"
	"strconv"

	"debit-worker/internal/domain/billing"
)

// 口座振替リクエストの固定値
const (
	DefaultTax          = 0
	DefaultShipFee      = 0
	DefaultTransferType = 1
	DefaultStatus       = 1
)

// Request 口座振替プロバイダへ送信するリクエストボディ
type Request struct {
	CustomerID   int64 `json:"customer_id"`
	Amount       int64 `json:"amount"`
	Tax          int64 `json:"tax"`
	ShipFee      int64 `json:"ship_fee"`
	TransferType int   `json:"transfer_type"`
	Status       int   `json:"status"`
}

// NewRequest 検証済みメッセージから決定的にリクエストを組み立てる
//
// direct_debit_idと正規化済みamountが整数に変換できない場合は
// ErrInvalidRequest（外部呼び出し前の検証失敗として扱う）。
func NewRequest(msg *billing.Message) (Request, error) {
	customerID, err := strconv.ParseInt(msg.DirectDebitID, 10, 64)
	if err != nil {
		return Request{}, fmt.Errorf("%w: direct_debit_id %q", ErrInvalidRequest, msg.DirectDebitID)
	}

	amount, err := strconv.ParseInt(msg.Amount, 10, 64)
	if err != nil {
		return Request{}, fmt.Errorf("%w: amount %q", ErrInvalidRequest, msg.Amount)
	}

	return Request{
		CustomerID:   customerID,
		Amount:       amount,
		Tax:          DefaultTax,
		ShipFee:      DefaultShipFee,
		TransferType: DefaultTransferType,
		Status:       DefaultStatus,
	}, nil
}

package mysql

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"debit-worker/internal/domain/ledger"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
)

// LedgerRepository MySQL実装のledger.Store
//
// ストレージ障害はログとスパンに記録し、booleanで返す。
// エラーを呼び出し側へ返さないのは、確定済みの振替結果を
// 書き込み失敗で覆さないため。
type LedgerRepository struct {
	db     *DB
	tracer trace.Tracer
	logger *otelinfra.Logger
}

// NewLedgerRepository 新しいLedgerRepositoryを作成
func NewLedgerRepository(db *DB, logger *otelinfra.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		tracer: otel.Tracer("ledger-repository"),
		logger: logger,
	}
}

// RecordDebitHistory 口座振替履歴を1件追記
//
// nilのポインタフィールドはNULLとして記録される。
func (r *LedgerRepository) RecordDebitHistory(ctx context.Context, rec *ledger.HistoryRecord) bool {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.RecordDebitHistory")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.merchant_code", rec.MerchantCode),
		attribute.String("db.user_code", rec.UserCode),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "TBL_DEBITHISTORY"),
	)

	query := `
		INSERT INTO TBL_DEBITHISTORY (
			request_id, Merchant_Code, User_Code, amount, tax, ship_fee,
			custom_code, next_transfer, transfer_type, transfer_count,
			status, item_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.RequestID,
		rec.MerchantCode,
		rec.UserCode,
		rec.Amount,
		rec.Tax,
		rec.ShipFee,
		rec.CustomCode,
		rec.NextTransfer,
		rec.TransferType,
		rec.TransferCount,
		rec.Status,
		rec.ItemCode,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		r.logger.Error(ctx, "failed to record debit history", err, map[string]interface{}{
			"merchant_code": rec.MerchantCode,
			"user_code":     rec.UserCode,
		})
		return false
	}

	span.SetStatus(otelcodes.Ok, "debit history recorded")
	return true
}

// MarkSettled 請求処理待ちのレコードを決済成功として確定
//
// 対象行が既に確定済みの場合、更新件数は0になるが成功として扱う。
func (r *LedgerRepository) MarkSettled(ctx context.Context, merchantCode, userCode string) bool {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.MarkSettled")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.merchant_code", merchantCode),
		attribute.String("db.user_code", userCode),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "TBL_USER_PAYMENT"),
	)

	query := `
		UPDATE TBL_USER_PAYMENT
		SET Billing_FLG = ?, Settlement_FLG = ?
		WHERE Merchant_Code = ? AND User_Code = ? AND Billing_FLG = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ledger.BillingFinished,
		ledger.SettlementSuccess,
		merchantCode,
		userCode,
		ledger.BillingPending,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		r.logger.Error(ctx, "failed to mark billing record as settled", err, map[string]interface{}{
			"merchant_code": merchantCode,
			"user_code":     userCode,
		})
		return false
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		r.logger.Warn(ctx, "no pending billing record to settle", map[string]interface{}{
			"merchant_code": merchantCode,
			"user_code":     userCode,
		})
	}

	span.SetStatus(otelcodes.Ok, "billing record settled")
	return true
}

// MarkFailed 請求処理待ちのレコードを決済失敗として確定
//
// errorCodeはError_Commentに記録される。空文字列も許容する。
func (r *LedgerRepository) MarkFailed(ctx context.Context, merchantCode, userCode, errorCode string) bool {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.MarkFailed")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.merchant_code", merchantCode),
		attribute.String("db.user_code", userCode),
		attribute.String("db.error_code", errorCode),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "TBL_USER_PAYMENT"),
	)

	query := `
		UPDATE TBL_USER_PAYMENT
		SET Billing_FLG = ?, Settlement_FLG = ?, Error_Comment = ?
		WHERE Merchant_Code = ? AND User_Code = ? AND Billing_FLG = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ledger.BillingFinished,
		ledger.SettlementFailure,
		errorCode,
		merchantCode,
		userCode,
		ledger.BillingPending,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		r.logger.Error(ctx, "failed to mark billing record as failed", err, map[string]interface{}{
			"merchant_code": merchantCode,
			"user_code":     userCode,
			"error_code":    errorCode,
		})
		return false
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		r.logger.Warn(ctx, "no pending billing record to fail", map[string]interface{}{
			"merchant_code": merchantCode,
			"user_code":     userCode,
		})
	}

	span.SetStatus(otelcodes.Ok, "billing record marked as failed")
	return true
}

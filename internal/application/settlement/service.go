package settlement

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"debit-worker/internal/domain/billing"
	"debit-worker/internal/domain/debit"
	"debit-worker/internal/domain/ledger"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
)

// 失敗確定時にError_Commentへ記録する既定のエラーコード
const logicalFailureErrorCode = "error"

// SettlementApplicationService 請求メッセージ1件の決済処理サービス
//
// パース・プロバイダ呼び出し・台帳書き込みを1本のパイプラインとして
// 調停する。ストレージ障害は決済の成否を変えない。
type SettlementApplicationService struct {
	client      debit.Client
	store       ledger.Store
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
	settleDelay time.Duration
}

// NewSettlementApplicationService 新しいSettlementApplicationServiceを作成
func NewSettlementApplicationService(
	client debit.Client,
	store ledger.Store,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	settleDelay time.Duration,
) *SettlementApplicationService {
	return &SettlementApplicationService{
		client:      client,
		store:       store,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("settlement-service"),
		settleDelay: settleDelay,
	}
}

// ProcessRecord 請求メッセージ1件を処理する
//
// エラーを返さず、常にProcessResultへ畳み込む。失敗の内訳は
// ログとメトリクスに記録される。
func (s *SettlementApplicationService) ProcessRecord(ctx context.Context, body string) *ProcessResult {
	ctx, span := s.tracer.Start(ctx, "SettlementApplicationService.ProcessRecord")
	defer span.End()

	start := time.Now()
	result := s.processRecord(ctx, span, body)

	outcome := "failure"
	if result.Settled {
		outcome = "success"
	}
	s.metrics.RecordProcessingTime(ctx, outcome, time.Since(start).Seconds())

	return result
}

func (s *SettlementApplicationService) processRecord(ctx context.Context, span trace.Span, body string) *ProcessResult {
	s.logger.Info(ctx, "Processing billing record", map[string]interface{}{
		"raw_body": body,
	})

	// メッセージの検証。外部への副作用はここでは発生しない
	msg, _, err := billing.ParseMessage([]byte(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "failed to parse billing message", err, nil)
		s.metrics.RecordError(ctx, "parse_error")
		s.metrics.RecordSettlement(ctx, "failed")
		return failureResult()
	}

	span.SetAttributes(
		attribute.String("billing.billing_id", msg.BillingID),
		attribute.String("billing.merchant_code", msg.MerchantCode),
		attribute.String("billing.user_code", msg.UserCode),
		attribute.String("billing.amount", msg.Amount),
	)

	req, err := debit.NewRequest(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "failed to build debit request", err, map[string]interface{}{
			"billing_id": msg.BillingID,
		})
		s.metrics.RecordError(ctx, "invalid_request")
		s.metrics.RecordSettlement(ctx, "failed")
		return failureResult()
	}

	result, err := s.client.Do(ctx, req)
	if err != nil {
		// ネットワーク障害・不正レスポンス。請求レコードは処理待ちのまま残す
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "debit request failed before outcome was known", err, map[string]interface{}{
			"billing_id": msg.BillingID,
		})
		s.metrics.RecordDebitRequest(ctx, "transport_error")
		s.metrics.RecordError(ctx, "transport_error")
		s.metrics.RecordSettlement(ctx, "failed")
		return failureResult()
	}

	if !result.OK {
		// プロバイダがHTTPレベルで拒否。履歴は書かず失敗として確定する
		s.metrics.RecordDebitRequest(ctx, "rejected")
		s.logger.Warn(ctx, "debit request rejected by provider", map[string]interface{}{
			"billing_id":  msg.BillingID,
			"status_code": result.StatusCode,
			"error_code":  result.Response.ErrorCode(),
		})
		if ok := s.store.MarkFailed(ctx, msg.MerchantCode, msg.UserCode, result.Response.ErrorCode()); !ok {
			s.metrics.RecordStorageWriteFailure(ctx, "mark_failed")
		}
		s.metrics.RecordSettlement(ctx, "failed")
		span.SetStatus(otelcodes.Error, "debit request rejected")
		return failureResult()
	}

	s.metrics.RecordDebitRequest(ctx, "accepted")

	// 受理されたリクエストの履歴は成否に関わらず追記する
	rec := ledger.HistoryFromResponse(result.Response, msg.MerchantCode, msg.UserCode)
	if ok := s.store.RecordDebitHistory(ctx, rec); !ok {
		s.metrics.RecordStorageWriteFailure(ctx, "record_debit_history")
	}

	if !result.Response.Settled() {
		// HTTPは成功だがボディのstatusが決済失敗を示す
		s.logger.Warn(ctx, "debit settlement declined", map[string]interface{}{
			"billing_id": msg.BillingID,
		})
		if ok := s.store.MarkFailed(ctx, msg.MerchantCode, msg.UserCode, logicalFailureErrorCode); !ok {
			s.metrics.RecordStorageWriteFailure(ctx, "mark_failed")
		}
		s.metrics.RecordSettlement(ctx, "failed")
		span.SetStatus(otelcodes.Error, "settlement declined")
		return failureResult()
	}

	if ok := s.store.MarkSettled(ctx, msg.MerchantCode, msg.UserCode); !ok {
		s.metrics.RecordStorageWriteFailure(ctx, "mark_settled")
	}
	s.metrics.RecordSettlement(ctx, "settled")
	s.logger.Info(ctx, "billing record settled", map[string]interface{}{
		"billing_id":    msg.BillingID,
		"merchant_code": msg.MerchantCode,
		"user_code":     msg.UserCode,
	})

	// プロバイダへの連続リクエストを抑えるための待機
	if s.settleDelay > 0 {
		time.Sleep(s.settleDelay)
	}

	span.SetStatus(otelcodes.Ok, "record processed")
	return successResult()
}

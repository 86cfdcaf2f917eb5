package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 口座振替リクエスト数（HTTPレベルの結果別）
	DebitRequestCount metric.Int64Counter

	// 決済確定数（settled / failed別）
	SettlementCount metric.Int64Counter

	// ストレージ書き込み失敗数（振替結果には影響しない分離障害）
	StorageWriteFailureCount metric.Int64Counter

	// メッセージ1件あたりの処理時間
	ProcessingTime metric.Float64Histogram

	// 受信リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	debitRequestCount, err := meter.Int64Counter(
		"debit_requests_total",
		metric.WithDescription("Total number of debit requests sent to the provider"),
	)
	if err != nil {
		return nil, err
	}

	settlementCount, err := meter.Int64Counter(
		"settlements_total",
		metric.WithDescription("Total number of settlement outcomes"),
	)
	if err != nil {
		return nil, err
	}

	storageWriteFailureCount, err := meter.Int64Counter(
		"storage_write_failures_total",
		metric.WithDescription("Total number of swallowed ledger write failures"),
	)
	if err != nil {
		return nil, err
	}

	processingTime, err := meter.Float64Histogram(
		"record_processing_seconds",
		metric.WithDescription("Time spent processing one queued record"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of inbound HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("HTTP response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		DebitRequestCount:        debitRequestCount,
		SettlementCount:          settlementCount,
		StorageWriteFailureCount: storageWriteFailureCount,
		ProcessingTime:           processingTime,
		RequestCount:             requestCount,
		ResponseTime:             responseTime,
		ErrorCount:               errorCount,
	}, nil
}

// RecordDebitRequest 口座振替リクエストを記録
func (m *Metrics) RecordDebitRequest(ctx context.Context, outcome string) {
	m.DebitRequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
		),
	)
}

// RecordSettlement 決済確定を記録
func (m *Metrics) RecordSettlement(ctx context.Context, result string) {
	m.SettlementCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("result", result),
		),
	)
}

// RecordStorageWriteFailure ストレージ書き込み失敗を記録
func (m *Metrics) RecordStorageWriteFailure(ctx context.Context, operation string) {
	m.StorageWriteFailureCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
		),
	)
}

// RecordProcessingTime メッセージ処理時間を記録
func (m *Metrics) RecordProcessingTime(ctx context.Context, outcome string, seconds float64) {
	m.ProcessingTime.Record(ctx, seconds,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
		),
	)
}

// RecordRequest 受信リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, seconds float64) {
	m.ResponseTime.Record(ctx, seconds,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

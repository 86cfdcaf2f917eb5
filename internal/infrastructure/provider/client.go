package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"debit-worker/internal/domain/debit"
	"debit-worker/internal/infrastructure/config"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
)

// APIKeyHeader 口座振替プロバイダの認証ヘッダー名
const APIKeyHeader = "X-Payment-API-Key"

// Client 口座振替プロバイダへのHTTPクライアント
//
// HTTPステータスの成否だけを判定し、ボディ内のstatusの解釈は行わない。
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *otelinfra.Logger
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.DebitConfig, logger *otelinfra.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tracer: otel.Tracer("debit-provider-client"),
		logger: logger,
	}
}

// Do 口座振替リクエストを送信
//
// ネットワークレベルの失敗はErrTransport、ボディがJSONとして解釈できない
// 場合はErrMalformedResponseを返す。HTTPエラーステータスはエラーではなく
// Result.OK=falseとして返す。
func (c *Client) Do(ctx context.Context, req debit.Request) (*debit.Result, error) {
	ctx, span := c.tracer.Start(ctx, "DebitProviderClient.Do")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("debit.customer_id", req.CustomerID),
		attribute.Int64("debit.amount", req.Amount),
	)

	payload, err := json.Marshal(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to marshal debit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to build debit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(APIKeyHeader, c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		c.logger.Error(ctx, "debit provider request failed", err, map[string]interface{}{
			"endpoint": c.endpoint,
		})
		return nil, fmt.Errorf("%w: %v", debit.ErrTransport, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", debit.ErrTransport, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))

	var resp debit.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		c.logger.Error(ctx, "debit provider returned malformed body", err, map[string]interface{}{
			"status_code": httpResp.StatusCode,
		})
		return nil, fmt.Errorf("%w: %v", debit.ErrMalformedResponse, err)
	}

	result := &debit.Result{
		OK:         httpResp.StatusCode >= 200 && httpResp.StatusCode < 300,
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Response:   &resp,
	}

	span.SetStatus(otelcodes.Ok, "debit request completed")
	return result, nil
}

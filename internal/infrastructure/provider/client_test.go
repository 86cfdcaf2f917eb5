package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"debit-worker/internal/domain/debit"
	"debit-worker/internal/infrastructure/config"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
)

func newTestClient(endpoint string) *Client {
	cfg := &config.DebitConfig{
		Endpoint: endpoint,
		APIKey:   "test-api-key",
		Timeout:  5 * time.Second,
	}
	return NewClient(cfg, otelinfra.NewLogger(otel.Tracer("test")))
}

func TestClient_Do(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.HandlerFunc
		wantOK         bool
		wantStatusCode int
		wantSettled    bool
		wantErrorCode  string
	}{
		{
			name: "正常系: プロバイダが成功を返す",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"status": 1, "request_id": "req-001", "amount": 1000}`))
			},
			wantOK:         true,
			wantStatusCode: http.StatusOK,
			wantSettled:    true,
		},
		{
			name: "正常系: HTTP 200でもボディstatusが失敗を示す",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"status": 2, "err": {"ec": "E999"}}`))
			},
			wantOK:         true,
			wantStatusCode: http.StatusOK,
			wantSettled:    false,
			wantErrorCode:  "E999",
		},
		{
			name: "正常系: HTTPエラーステータスはOK=falseで返す",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"err": {"ec": "E001"}}`))
			},
			wantOK:         false,
			wantStatusCode: http.StatusBadRequest,
			wantSettled:    false,
			wantErrorCode:  "E001",
		},
		{
			name: "正常系: サーバーエラーもOK=falseで返す",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{}`))
			},
			wantOK:         false,
			wantStatusCode: http.StatusInternalServerError,
			wantSettled:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL)

			result, err := client.Do(context.Background(), debit.Request{
				CustomerID: 42,
				Amount:     1000,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantOK, result.OK)
			assert.Equal(t, tt.wantStatusCode, result.StatusCode)
			require.NotNil(t, result.Response)
			assert.Equal(t, tt.wantSettled, result.Response.Settled())
			assert.Equal(t, tt.wantErrorCode, result.Response.ErrorCode())
		})
	}
}

func TestClient_Do_SendsHeadersAndBody(t *testing.T) {
	var gotAPIKey, gotContentType string
	var gotBody debit.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get(APIKeyHeader)
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": 1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	req := debit.Request{
		CustomerID:   42,
		Amount:       1000,
		Tax:          debit.DefaultTax,
		ShipFee:      debit.DefaultShipFee,
		TransferType: debit.DefaultTransferType,
		Status:       debit.DefaultStatus,
	}
	_, err := client.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "test-api-key", gotAPIKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, req, gotBody)
}

func TestClient_Do_TransportError(t *testing.T) {
	// 接続先のないエンドポイントを指定
	client := newTestClient("http://127.0.0.1:1")

	result, err := client.Do(context.Background(), debit.Request{CustomerID: 42, Amount: 1000})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, debit.ErrTransport)
}

func TestClient_Do_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": 1}`))
	}))
	defer server.Close()

	cfg := &config.DebitConfig{
		Endpoint: server.URL,
		APIKey:   "test-api-key",
		Timeout:  50 * time.Millisecond,
	}
	client := NewClient(cfg, otelinfra.NewLogger(otel.Tracer("test")))

	result, err := client.Do(context.Background(), debit.Request{CustomerID: 42, Amount: 1000})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, debit.ErrTransport)
}

func TestClient_Do_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not a json body`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.Do(context.Background(), debit.Request{CustomerID: 42, Amount: 1000})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, debit.ErrMalformedResponse)
}

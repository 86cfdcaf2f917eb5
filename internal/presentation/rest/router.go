package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	settlementapp "debit-worker/internal/application/settlement"
	"debit-worker/internal/infrastructure/config"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
	"debit-worker/internal/presentation/rest/handler"
	restmiddleware "debit-worker/internal/presentation/rest/middleware"
)

// HealthChecker 依存先の疎通確認
type HealthChecker interface {
	HealthCheck() error
}

// Router REST APIルーター
type Router struct {
	echo         *echo.Echo
	queueHandler *handler.QueueHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	settlementService *settlementapp.SettlementApplicationService,
	health HealthChecker,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, logger, metrics)

	// ハンドラーの作成
	queueHandler := handler.NewQueueHandler(settlementService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, queueHandler, health)

	return &Router{
		echo:         e,
		queueHandler: queueHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	queueHandler *handler.QueueHandler,
	health HealthChecker,
) {
	// キュー転送コラボレータ向けエンドポイント（サービス認証が必要）
	internal := e.Group("/internal", restmiddleware.AuthMiddleware(&cfg.Auth, logger))
	internal.POST("/queue/records", queueHandler.ProcessRecords)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		if err := health.HealthCheck(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}

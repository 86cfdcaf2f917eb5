package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	settlementapp "debit-worker/internal/application/settlement"
)

// QueueHandler キュー経由の請求レコード処理ハンドラー
type QueueHandler struct {
	settlementService *settlementapp.SettlementApplicationService
}

// NewQueueHandler 新しいQueueHandlerを作成
func NewQueueHandler(settlementService *settlementapp.SettlementApplicationService) *QueueHandler {
	return &QueueHandler{
		settlementService: settlementService,
	}
}

// ProcessRecords 請求レコードを処理
//
// イベント封筒はちょうど1件のレコードを含む前提。バッチサイズ1で
// 転送される契約のため、それ以外はデプロイ不整合として500を返し、
// 決済処理は開始しない。
func (h *QueueHandler) ProcessRecords(c echo.Context) error {
	var event QueueEvent
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if len(event.Records) != 1 {
		return echo.NewHTTPError(http.StatusInternalServerError, "event must contain exactly one record")
	}

	result := h.settlementService.ProcessRecord(c.Request().Context(), event.Records[0].Body)

	return c.JSON(result.StatusCode, QueueResultResponse{
		StatusCode: result.StatusCode,
		Body:       result.Body,
	})
}

package handler

// QueueEvent キュー転送コラボレータから受信するイベント封筒
type QueueEvent struct {
	Records []QueueRecord `json:"Records"`
}

// QueueRecord キューレコード。bodyに請求メッセージのJSON文字列を含む
type QueueRecord struct {
	Body string `json:"body"`
}

// QueueResultResponse 1レコード処理結果のレスポンス
type QueueResultResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

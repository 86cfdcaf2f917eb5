package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"debit-worker/internal/infrastructure/config"
	otelinfra "debit-worker/internal/infrastructure/observability/otel"
)

// AuthMiddleware JWT認証ミドルウェア
//
// キュー転送コラボレータが発行するサービストークンを検証する。
// issuerクレームが設定値と一致しないトークンは拒否する。
func AuthMiddleware(cfg *config.AuthConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			// Authorizationヘッダーからトークンを取得
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(ctx, "Missing authorization header", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Missing authorization header",
				})
			}

			// Bearerトークンの形式を確認
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(ctx, "Invalid authorization header format", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid authorization header format",
				})
			}

			tokenString := parts[1]

			// JWTトークンの検証
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// 署名アルゴリズムの確認
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})

			if err != nil || !token.Valid {
				fields := map[string]interface{}{}
				if err != nil {
					fields["error"] = err.Error()
				}
				logger.Warn(ctx, "Invalid token", fields)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid or expired token",
				})
			}

			// クレームから発行者を確認
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn(ctx, "Invalid token claims", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid token claims",
				})
			}

			issuer, ok := claims["iss"].(string)
			if !ok || issuer != cfg.Issuer {
				logger.Warn(ctx, "Unexpected token issuer", map[string]interface{}{
					"issuer": issuer,
				})
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Unexpected token issuer",
				})
			}

			// 呼び出し元サービス名をコンテキストに設定
			if sub, ok := claims["sub"].(string); ok {
				c.Set("caller", sub)
			}

			// 次のハンドラーを実行
			return next(c)
		}
	}
}

// Package api は複数フィーチャーで共有する HTTP レスポンス型を定義します。
package api

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse はメッセージのみを返すレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}

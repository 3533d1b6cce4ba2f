// Package logging は log/slog のロガーを設定から構築します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New はレベルとフォーマット（json / text）に応じた slog.Logger を生成します。
// 不明なレベルは info、不明なフォーマットは json として扱います。
func New(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

// Setup は New で生成したロガーをデフォルトロガーとして登録します。
func Setup(level, format string) *slog.Logger {
	logger := New(level, format, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel はレベル名を slog.Level に変換します。未知の値は Info です。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

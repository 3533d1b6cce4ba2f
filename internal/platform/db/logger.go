package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold は Warn で記録するクエリ時間の下限です。
const SlowQueryThreshold = 200 * time.Millisecond

// SlogLogger は GORM のログを slog に流す logger.Interface 実装です。
// SQL はプレースホルダーのまま記録し、バインド値（メールアドレスやハッシュ）は出力しません。
type SlogLogger struct {
	log    *slog.Logger
	level  logger.LogLevel
	slow   time.Duration
	expect []func(error) bool
}

var (
	_ logger.Interface  = (*SlogLogger)(nil)
	_ gorm.ParamsFilter = (*SlogLogger)(nil)
)

// NewLogger は l に出力する SlogLogger を生成します。l が nil の場合は slog.Default() を使います。
func NewLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{log: l, level: logger.Warn, slow: SlowQueryThreshold}
}

func (l *SlogLogger) clone() *SlogLogger {
	c := *l
	c.expect = append([]func(error) bool(nil), l.expect...)
	return &c
}

// LogMode は level で記録する複製を返します。
func (l *SlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := l.clone()
	c.level = level
	return c
}

// Expecting は matchers のいずれかに一致するエラーを記録しない複製を返します。
func (l *SlogLogger) Expecting(matchers ...func(error) bool) *SlogLogger {
	c := l.clone()
	c.expect = append(c.expect, matchers...)
	return c
}

// Info は GORM 内部のメッセージを Info で出力します。
func (l *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Warn は GORM 内部の警告を出力します。
func (l *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Error は GORM 内部のエラーを出力します。
func (l *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace はクエリ 1 件を記録します。
// 失敗は Error、閾値超過は Warn、LogMode(Info) のときは全件を Debug で出力します。
func (l *SlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !l.expected(err):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "gorm query failed",
			"error", err, "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.WarnContext(ctx, "gorm slow query",
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "threshold_ms", l.slow.Milliseconds())
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.DebugContext(ctx, "gorm query", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}

// ParamsFilter はバインド値を捨て、ログの SQL をプレースホルダー表記にします。
func (l *SlogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *SlogLogger) expected(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	for _, match := range l.expect {
		if match(err) {
			return true
		}
	}
	return false
}

// ExpectingErrors は matchers に一致するエラーをログに出さないセッションを返します。
// 一意制約違反を分岐に使う挿入など、エラーが正常系の一部である呼び出しに使います。
func ExpectingErrors(db *gorm.DB, matchers ...func(error) bool) *gorm.DB {
	sl, ok := db.Logger.(*SlogLogger)
	if !ok {
		return db
	}
	return db.Session(&gorm.Session{Logger: sl.Expecting(matchers...)})
}

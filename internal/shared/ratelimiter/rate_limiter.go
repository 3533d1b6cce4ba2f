// Package ratelimiter はプロセス内で完結する固定ウィンドウのカウンターを提供します。
// Redis が利用できない場合のフォールバックとして使用されます。
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// pruneThreshold を超えるキーを保持したら期限切れのウィンドウを掃除する
const pruneThreshold = 1024

type window struct {
	count   int64
	resetAt time.Time
}

// FixedWindow はキーごとに一定時間内の呼び出し回数を数えます。
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewFixedWindow は新しい FixedWindow を生成します。
func NewFixedWindow() *FixedWindow {
	return &FixedWindow{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// IncrWithTTL は key のカウントを 1 増やし、現在のウィンドウ内の回数を返します。
// ウィンドウは最初の呼び出しから ttl 経過でリセットされます。
func (f *FixedWindow) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	w, ok := f.windows[key]
	if !ok || !now.Before(w.resetAt) {
		if len(f.windows) >= pruneThreshold {
			f.prune(now)
		}
		w = &window{resetAt: now.Add(ttl)}
		f.windows[key] = w
	}
	w.count++
	return w.count, nil
}

func (f *FixedWindow) prune(now time.Time) {
	for k, w := range f.windows {
		if !now.Before(w.resetAt) {
			delete(f.windows, k)
		}
	}
}

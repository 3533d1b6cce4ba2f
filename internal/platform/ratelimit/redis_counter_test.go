package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCounter_IncrWithTTL(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		set   bool
	}{
		{name: "first increment sets ttl", count: 1, set: true},
		{name: "later increment keeps existing ttl", count: 4, set: false},
		{name: "key left without ttl gets one", count: 7, set: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			counter := NewRedisCounter(db)

			mock.ExpectTxPipeline()
			mock.ExpectIncr("rl:login:1.2.3.4").SetVal(tt.count)
			mock.ExpectExpireNX("rl:login:1.2.3.4", time.Minute).SetVal(tt.set)
			mock.ExpectTxPipelineExec()

			n, err := counter.IncrWithTTL(context.Background(), "rl:login:1.2.3.4", time.Minute)

			require.NoError(t, err)
			assert.Equal(t, tt.count, n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisCounter_NoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	counter := NewRedisCounter(db)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("k").SetVal(2)
	mock.ExpectTxPipelineExec()

	n, err := counter.IncrWithTTL(context.Background(), "k", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCounter_Errors(t *testing.T) {
	t.Run("incr failure", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		counter := NewRedisCounter(db)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("k").SetErr(errors.New("connection refused"))
		mock.ExpectExpireNX("k", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()

		n, err := counter.IncrWithTTL(context.Background(), "k", time.Minute)
		assert.Error(t, err)
		assert.Zero(t, n)
	})

	t.Run("expire failure", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		counter := NewRedisCounter(db)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("k").SetVal(1)
		mock.ExpectExpireNX("k", time.Minute).SetErr(errors.New("READONLY"))
		mock.ExpectTxPipelineExec()

		n, err := counter.IncrWithTTL(context.Background(), "k", time.Minute)
		assert.Error(t, err)
		assert.Zero(t, n, "count is not reported when the ttl could not be set")
	})
}

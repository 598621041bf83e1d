package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-image-workers/internal/backend/chat"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/style/promptsynth"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	out   string
	err   error
	calls int
	last  chat.Request
}

func (s *stubBackend) Complete(_ context.Context, req chat.Request) (string, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}

func TestTranslate_NoCache(t *testing.T) {
	backend := &stubBackend{out: "  限时特惠 \n"}
	tr := New(backend, nil, time.Hour, logger.NewTestLogger(t))

	assert.Equal(t, "限时特惠", tr.Translate(context.Background(), "Limited Offer"))
	assert.Equal(t, promptsynth.TranslationInstruction, backend.last.System)
	assert.Equal(t, "Limited Offer", backend.last.User)
}

func TestTranslate_BestEffort(t *testing.T) {
	tests := []struct {
		name    string
		backend *stubBackend
	}{
		{"backend error", &stubBackend{err: errors.New("timeout")}},
		{"status error", &stubBackend{err: &chat.StatusError{StatusCode: 502}}},
		{"empty answer", &stubBackend{out: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.backend, nil, 0, logger.NewNoOpLogger())
			assert.Equal(t, "Hot Sale", tr.Translate(context.Background(), "Hot Sale"))
		})
	}
}

func TestTranslate_BlankInputSkipsBackend(t *testing.T) {
	backend := &stubBackend{out: "x"}
	tr := New(backend, nil, 0, nil)

	assert.Equal(t, "  ", tr.Translate(context.Background(), "  "))
	assert.Zero(t, backend.calls)
}

func TestTranslate_MiniredisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backend := &stubBackend{out: "新品上市"}
	tr := New(backend, rdb, 10*time.Minute, logger.NewTestLogger(t))

	assert.Equal(t, "新品上市", tr.Translate(context.Background(), "New Arrival"))
	assert.Equal(t, "新品上市", tr.Translate(context.Background(), "New Arrival"))
	assert.Equal(t, 1, backend.calls)

	key := CacheKey("New Arrival")
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "新品上市", got)
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(11 * time.Minute)
	tr.Translate(context.Background(), "New Arrival")
	assert.Equal(t, 2, backend.calls)
}

func TestTranslate_CacheUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	backend := &stubBackend{out: "热卖"}
	tr := New(backend, rdb, time.Minute, logger.NewNoOpLogger())

	assert.Equal(t, "热卖", tr.Translate(context.Background(), "Hot"))
	assert.Equal(t, 1, backend.calls)
}

func TestTranslate_RedismockExpectations(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := CacheKey("Free Shipping")

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, "包邮", 5*time.Minute).SetVal("OK")

	backend := &stubBackend{out: "包邮"}
	tr := New(backend, db, 5*time.Minute, logger.NewNoOpLogger())

	assert.Equal(t, "包邮", tr.Translate(context.Background(), "Free Shipping"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate_RedismockFailureSkipsWrite(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := CacheKey("Sale")

	mock.ExpectGet(key).SetErr(errors.New("READONLY"))

	tr := New(&stubBackend{err: errors.New("down")}, db, time.Minute, logger.NewNoOpLogger())

	assert.Equal(t, "Sale", tr.Translate(context.Background(), "Sale"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("abc")
	assert.Equal(t, "translate:zh:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", key)
	assert.NotEqual(t, key, CacheKey("abd"))
}

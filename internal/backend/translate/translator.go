// Package translate turns Latin overlay text into Simplified Chinese through
// the chat backend, with an optional Redis cache in front of it.
package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"product-image-workers/internal/backend/chat"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/metrics"
	"product-image-workers/internal/style/interpret"
	"product-image-workers/internal/style/promptsynth"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "translate:zh:"

// Backend is the chat call the translator needs.
type Backend interface {
	Complete(ctx context.Context, req chat.Request) (string, error)
}

// Translator is best effort: when anything fails the input comes back as is.
type Translator struct {
	backend Backend
	cache   redis.Cmdable
	ttl     time.Duration
	logger  logger.Logger
}

// New builds a translator. Caching is off when cache is nil or ttl is not
// positive.
func New(backend Backend, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *Translator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if ttl <= 0 {
		cache = nil
	}
	return &Translator{
		backend: backend,
		cache:   cache,
		ttl:     ttl,
		logger:  log,
	}
}

// CacheKey is the Redis key a translation of text is stored under.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Translate returns the Simplified Chinese rendering of text.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	key := CacheKey(text)
	if cached, ok := t.lookup(ctx, key); ok {
		metrics.Translations.WithLabelValues(metrics.TranslationCacheHit).Inc()
		return cached
	}

	out, err := t.backend.Complete(ctx, chat.Request{
		Call:   "translate",
		System: promptsynth.TranslationInstruction,
		User:   text,
	})
	if err != nil {
		metrics.Translations.WithLabelValues(metrics.TranslationFailed).Inc()
		t.logger.Warn("Translation failed, keeping source text", map[string]interface{}{
			"error": err.Error(),
		})
		return text
	}

	translated := strings.TrimSpace(interpret.StripFence(out))
	if translated == "" {
		metrics.Translations.WithLabelValues(metrics.TranslationFailed).Inc()
		return text
	}

	metrics.Translations.WithLabelValues(metrics.TranslationBackend).Inc()
	t.store(ctx, key, translated)
	return translated
}

func (t *Translator) lookup(ctx context.Context, key string) (string, bool) {
	if t.cache == nil {
		return "", false
	}
	val, err := t.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			t.logger.Debug("Translation cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return "", false
	}
	return val, true
}

func (t *Translator) store(ctx context.Context, key, value string) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Set(ctx, key, value, t.ttl).Err(); err != nil {
		t.logger.Debug("Translation cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

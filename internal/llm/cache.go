package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/internal/storage"
)

// CachedAnalyzer wraps an Analyzer with persistent caching keyed by the
// analysis mode and a hash of the image bytes. Identical photos analyzed in
// the same mode are served from the cache without a provider call.
type CachedAnalyzer struct {
	inner Analyzer
	store storage.Store
}

// NewCachedAnalyzer creates a cached analyzer.
func NewCachedAnalyzer(inner Analyzer, store storage.Store) *CachedAnalyzer {
	return &CachedAnalyzer{inner: inner, store: store}
}

// cacheKey hashes the mode together with the image bytes so the same photo
// analyzed in different modes gets distinct entries.
func cacheKey(imageData []byte, mode AnalysisMode) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write(imageData)
	return hex.EncodeToString(h.Sum(nil))
}

// Analyze implements the Analyzer interface with caching.
func (c *CachedAnalyzer) Analyze(ctx context.Context, imageData []byte, mimeType string, mode AnalysisMode) (*AnalysisResult, error) {
	key := cacheKey(imageData, mode)

	if c.store != nil {
		payload, err := c.store.GetAdviceCache(key)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check advice cache")
		} else if payload != nil {
			var result AnalysisResult
			if err := json.Unmarshal(payload, &result); err != nil {
				log.Warn().Err(err).Msg("discarding corrupt advice cache entry")
			} else {
				log.Debug().Str("hash", key[:16]).Str("mode", string(mode)).Msg("advice cache hit")
				return &result, nil
			}
		}
	}

	result, err := c.inner.Analyze(ctx, imageData, mimeType, mode)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			err = c.store.SetAdviceCache(key, payload)
		}
		if err != nil {
			log.Warn().Err(err).Msg("failed to cache analysis result")
		} else {
			log.Debug().Str("hash", key[:16]).Str("mode", string(mode)).Msg("cached analysis result")
		}
	}

	return result, nil
}

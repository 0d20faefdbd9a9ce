package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

type l1Entry struct {
	payload   []byte
	expiresAt time.Time
}

// Layer is the two-tier query result cache. L1 is a bounded in-process LRU
// with lazy per-entry TTL expiry on read; L2 is an optional shared Redis
// tier. A nil or failing L2 degrades the layer to L1-only.
type Layer struct {
	l1  *lru.Cache[string, l1Entry]
	l2  *RedisTier
	now func() time.Time
}

func NewLayer(l1Size int, l2 *RedisTier) (*Layer, error) {
	if l1Size <= 0 {
		l1Size = 1024
	}
	l1, err := lru.New[string, l1Entry](l1Size)
	if err != nil {
		return nil, err
	}
	return &Layer{l1: l1, l2: l2, now: time.Now}, nil
}

func (c *Layer) GetQueryResult(ctx context.Context, businessID, query string) (*domain.QueryResponse, bool) {
	key := cacheKey(businessID, query)

	if entry, ok := c.l1.Get(key); ok {
		if c.now().Before(entry.expiresAt) {
			return decodeResponse(entry.payload)
		}
		c.l1.Remove(key)
	}

	if c.l2 == nil {
		return nil, false
	}
	payload, ok := c.l2.Get(ctx, key)
	if !ok {
		return nil, false
	}
	// Refill L1 with a short horizon; L2 owns the authoritative TTL.
	c.l1.Add(key, l1Entry{payload: payload, expiresAt: c.now().Add(30 * time.Second)})
	return decodeResponse(payload)
}

func (c *Layer) SetQueryResult(ctx context.Context, businessID, query string, response *domain.QueryResponse, ttl time.Duration) {
	if response == nil {
		return
	}
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	payload, err := json.Marshal(response)
	if err != nil {
		slog.Warn("cache_encode_failed", "error", err)
		return
	}

	key := cacheKey(businessID, query)
	c.l1.Add(key, l1Entry{payload: payload, expiresAt: c.now().Add(ttl)})
	if c.l2 != nil {
		c.l2.Set(ctx, key, payload, ttl)
	}
}

// InvalidateBusiness purges every entry for one business from both tiers and
// leaves other businesses' entries alone. The L1 walk is bounded by the
// cache size.
func (c *Layer) InvalidateBusiness(ctx context.Context, businessID string) {
	prefix := businessPrefix(businessID)
	for _, key := range c.l1.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.l1.Remove(key)
		}
	}
	if c.l2 != nil {
		c.l2.DeletePrefix(ctx, prefix)
	}
}

func decodeResponse(payload []byte) (*domain.QueryResponse, bool) {
	var response domain.QueryResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		slog.Warn("cache_decode_failed", "error", err)
		return nil, false
	}
	return &response, true
}

package pagecache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/feedsync/internal/model"
)

// Cache is a read-through Redis cache for comment pages in front of the
// local gateway. Keys are scoped by viewer because is_liked is per viewer.
// Any comment/reply write for a post invalidates every cached page of it.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func commentKey(postID, viewerID string, page int) string {
	return fmt.Sprintf("comments:%s:%s:%d", postID, viewerID, page)
}

// GetComments returns a cached page, or ok=false on miss/decode failure.
func (c *Cache) GetComments(ctx context.Context, postID, viewerID string, page int) ([]model.Comment, bool) {
	data, err := c.rdb.Get(ctx, commentKey(postID, viewerID, page)).Bytes()
	if err != nil {
		c.misses.Add(1)
		return nil, false
	}
	var out []model.Comment
	if err := json.Unmarshal(data, &out); err != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return out, true
}

// SetComments stores a page with the configured TTL. Best effort.
func (c *Cache) SetComments(ctx context.Context, postID, viewerID string, page int, comments []model.Comment) {
	payload, err := json.Marshal(comments)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, commentKey(postID, viewerID, page), payload, c.ttl).Err()
}

// InvalidatePost drops every cached comment page of one post.
func (c *Cache) InvalidatePost(ctx context.Context, postID string) {
	keys, err := c.rdb.Keys(ctx, fmt.Sprintf("comments:%s:*", postID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// Stats reports hit/miss counters (sampled).
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

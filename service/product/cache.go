package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"products.GO/core/cache"
	"products.GO/core/logx"
)

const (
	cacheKeyPrefix = "product:upc:"
	cacheTag       = "product"
)

// Cache holds shaped lookups keyed by the requested UPC. Only found products
// are cached; a cache failure is a miss, never an error.
type Cache interface {
	Get(ctx context.Context, upc string) (*PublicProduct, bool)
	Set(ctx context.Context, upc string, p *PublicProduct)
	Purge(ctx context.Context) error
}

// LocalCache keeps shaped products in process memory.
type LocalCache struct {
	c   *cache.Cache
	ttl time.Duration
}

func NewLocalCache(ttl time.Duration) *LocalCache {
	return &LocalCache{c: cache.NewCache(), ttl: ttl}
}

func (l *LocalCache) Get(_ context.Context, upc string) (*PublicProduct, bool) {
	v, ok := l.c.Get(cacheKeyPrefix + upc)
	if !ok {
		return nil, false
	}
	return clonePublic(v.(*PublicProduct)), true
}

func (l *LocalCache) Set(_ context.Context, upc string, p *PublicProduct) {
	l.c.Set(cacheKeyPrefix+upc, clonePublic(p), l.ttl, []string{cacheTag})
}

// clonePublic copies p so callers never share variants with a cached entry.
func clonePublic(p *PublicProduct) *PublicProduct {
	out := *p
	out.Variants = make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		if v.CasePack != nil {
			cp := *v.CasePack
			v.CasePack = &cp
		}
		out.Variants[i] = v
	}
	return &out
}

func (l *LocalCache) Purge(_ context.Context) error {
	l.c.DeleteByTag(cacheTag)
	return nil
}

// RedisCache shares shaped products between instances as JSON values.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, upc string) (*PublicProduct, bool) {
	b, err := r.client.Get(ctx, cacheKeyPrefix+upc).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Warn().Err(err).Str("upc", upc).Msg("redis cache get failed")
		}
		return nil, false
	}
	var p PublicProduct
	if err := json.Unmarshal(b, &p); err != nil {
		logx.Warn().Err(err).Str("upc", upc).Msg("redis cache entry unreadable")
		return nil, false
	}
	return &p, true
}

func (r *RedisCache) Set(ctx context.Context, upc string, p *PublicProduct) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKeyPrefix+upc, b, r.ttl).Err(); err != nil {
		logx.Warn().Err(err).Str("upc", upc).Msg("redis cache set failed")
	}
}

// Purge removes every cached product, scanning in batches of 100 keys.
func (r *RedisCache) Purge(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

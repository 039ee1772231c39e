package storage

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedBlobStore serves reads from memory for ttl after a read or write
// went through to the wrapped store. Writes by other processes are not
// seen until the entry expires.
type CachedBlobStore struct {
	next  BlobStore
	cache *cache.Cache
}

func NewCachedBlobStore(next BlobStore, ttl time.Duration) *CachedBlobStore {
	return &CachedBlobStore{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	cached, found := c.cache.Get(key)

	if found {
		return append([]byte(nil), cached.([]byte)...), nil
	}

	value, err := c.next.Get(ctx, key)

	if err != nil {
		return nil, err
	}

	c.cache.Set(key, append([]byte(nil), value...), cache.DefaultExpiration)

	return value, nil
}

func (c *CachedBlobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}

	c.cache.Set(key, append([]byte(nil), value...), cache.DefaultExpiration)

	return nil
}

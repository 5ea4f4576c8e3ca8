// Package memory backs the storage port with an in-process go-cache map. It
// is the default backend for tests and local runs, standing in for browser
// local storage the way the simulated backend expects.
package memory

import (
	"context"

	"agriecom/internal/storage"

	gocache "github.com/patrickmn/go-cache"
)

type Storage struct {
	c *gocache.Cache
}

func New() *Storage {
	return &Storage{c: gocache.New(gocache.NoExpiration, 0)}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := s.c.Get(key)
	if !ok {
		return nil, storage.ErrKeyNotFound
	}

	return v.([]byte), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// copy so later caller mutations don't leak into the stored value
	buf := make([]byte, len(value))
	copy(buf, value)
	s.c.Set(key, buf, gocache.NoExpiration)

	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.c.Delete(key)

	return nil
}

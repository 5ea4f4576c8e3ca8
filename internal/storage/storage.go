// Package storage defines the key-value port every repository persists
// through, plus the sentinel errors shared across the storage and repository
// layers. Values are JSON-encoded collections; the keys mirror the
// storefront's browser-storage layout.
package storage

import (
	"context"
	"errors"
)

const (
	UsersKey       = "agriecom_users"
	CurrentUserKey = "agriecom_current_user"
	ProductsKey    = "agriecom_products"
	CartKey        = "agriecom_cart"
)

var (
	ErrKeyNotFound     = errors.New("no such key")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Storage is the injected storage capability. Only repositories receive it;
// handing the raw store to anything else bypasses every invariant the
// repositories enforce.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

package seed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"agriecom/internal/domain/models"
	"agriecom/internal/storage"
	"agriecom/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFixtures(t *testing.T) {
	users := Users()
	require.NotEmpty(t, users)

	var admin *models.User
	for i := range users {
		if users[i].Role == models.RoleAdmin {
			admin = &users[i]
		}
	}
	require.NotNil(t, admin, "fixtures must include an admin account")
	assert.Equal(t, "admin@agriecom.com", admin.Email)

	products := Products()
	require.NotEmpty(t, products)

	sellers := make(map[string]bool, len(users))
	for _, u := range users {
		sellers[u.ID] = true
	}
	for _, p := range products {
		assert.True(t, sellers[p.SellerID], "product %s references unknown seller %s", p.ID, p.SellerID)
	}
}

func TestBootstrap_SeedsEmptyStorage(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, NewSeeder(discardLogger(), store).Bootstrap(ctx))

	data, err := store.Get(ctx, storage.UsersKey)
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, json.Unmarshal(data, &users))
	assert.Len(t, users, len(Users()))

	data, err = store.Get(ctx, storage.ProductsKey)
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.Len(t, products, len(Products()))
}

func TestBootstrap_LeavesRealDataAlone(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	existing := []byte(`[{"id":"u-custom","email":"keep@exemple.fr","role":"buyer"}]`)
	require.NoError(t, store.Set(ctx, storage.UsersKey, existing))

	require.NoError(t, NewSeeder(discardLogger(), store).Bootstrap(ctx))

	data, err := store.Get(ctx, storage.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, existing, data)
}

func TestBootstrap_ReseedsEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.Set(ctx, storage.UsersKey, []byte("[]")))
	require.NoError(t, store.Set(ctx, storage.ProductsKey, []byte("{not json")))

	require.NoError(t, NewSeeder(discardLogger(), store).Bootstrap(ctx))

	data, err := store.Get(ctx, storage.UsersKey)
	require.NoError(t, err)
	var users []models.User
	require.NoError(t, json.Unmarshal(data, &users))
	assert.NotEmpty(t, users)

	data, err = store.Get(ctx, storage.ProductsKey)
	require.NoError(t, err)
	var products []models.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.NotEmpty(t, products)
}

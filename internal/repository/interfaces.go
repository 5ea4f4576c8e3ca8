package repository

import (
	"context"

	"agriecom/internal/domain/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --all

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) (models.User, error)
	Remove(ctx context.Context, id string) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	Insert(ctx context.Context, product models.Product) error
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query, category string) ([]models.Product, error)
}

type SessionRepository interface {
	Current(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}

type CartRepository interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Save(ctx context.Context, items []models.CartItem) error
	Clear(ctx context.Context) error
}

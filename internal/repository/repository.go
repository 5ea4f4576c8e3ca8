// Package repository implements the CRUD surface over the JSON key-value
// store. Every collection lives under a single key and every mutation is a
// full read-modify-write of that collection, serialized per repository by a
// mutex so two writers can't clobber each other's snapshot.
package repository

import (
	"log/slog"

	"agriecom/internal/storage"
)

type Repository struct {
	User    UserRepository
	Product ProductRepository
	Session SessionRepository
	Cart    CartRepository
}

func New(log *slog.Logger, store storage.Storage) *Repository {
	return &Repository{
		User:    NewUserRepository(log, store),
		Product: NewProductRepository(log, store),
		Session: NewSessionRepository(log, store),
		Cart:    NewCartRepository(log, store),
	}
}

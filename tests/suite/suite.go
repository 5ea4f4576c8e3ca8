package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"agriecom/internal/lib/netdelay"
	"agriecom/internal/repository"
	"agriecom/internal/seed"
	cartsvc "agriecom/internal/services/cart_service"
	productsvc "agriecom/internal/services/product_service"
	sessionsvc "agriecom/internal/services/session_service"
	usersvc "agriecom/internal/services/user_service"
	"agriecom/internal/storage/memory"
)

// Suite wires the full service stack over in-memory storage with the demo
// fixtures loaded and the simulated latency turned off.
type Suite struct {
	*testing.T
	Users    *usersvc.UserService
	Products *productsvc.ProductService
	Sessions *sessionsvc.SessionService
	Cart     *cartsvc.CartService
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.New()
	if err := seed.NewSeeder(log, store).Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap fixtures: %v", err)
	}

	repos := repository.New(log, store)

	sessions := sessionsvc.NewSessionService(log, repos.Session)
	users := usersvc.NewUserService(log, repos.User, sessions, netdelay.None{})
	products := productsvc.NewProductService(log, repos.Product, netdelay.None{})
	cart := cartsvc.NewCartService(log, repos.Cart, repos.Product)

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Minute)

	t.Cleanup(func() {
		t.Helper()
		cancelCtx()
	})

	return ctx, &Suite{
		T:        t,
		Users:    users,
		Products: products,
		Sessions: sessions,
		Cart:     cart,
	}
}

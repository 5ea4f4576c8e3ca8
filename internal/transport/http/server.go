// Package http exposes the storefront's data operations over an Echo JSON
// API. Handlers translate transport payloads into service calls and service
// errors into status codes; no business rule lives here.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/lib/validation"
	cartsvc "agriecom/internal/services/cart_service"
	productsvc "agriecom/internal/services/product_service"
	usersvc "agriecom/internal/services/user_service"
	"agriecom/internal/transport/http/dto/request"
	"agriecom/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, input usersvc.RegisterInput) (models.User, error)
	UpdateProfile(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	CreateProduct(ctx context.Context, input productsvc.CreateInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Search(ctx context.Context, query, category string) ([]models.Product, error)
}

type SessionService interface {
	Current(ctx context.Context) (*models.User, error)
	End(ctx context.Context) error
}

type CartService interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, productID string, qty int) ([]models.CartItem, error)
	SetQuantity(ctx context.Context, productID string, qty int) ([]models.CartItem, error)
	Remove(ctx context.Context, productID string) ([]models.CartItem, error)
	Clear(ctx context.Context) error
	Total(ctx context.Context) (float64, error)
}

type Routers struct {
	log            *slog.Logger
	UserService    UserService
	ProductService ProductService
	SessionService SessionService
	CartService    CartService
}

func NewRouter(log *slog.Logger, users UserService, products ProductService, sessions SessionService, cart CartService) *Routers {
	return &Routers{
		log:            log,
		UserService:    users,
		ProductService: products,
		SessionService: sessions,
		CartService:    cart,
	}
}

func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	var req request.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	user, err := r.UserService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	var req request.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	user, err := r.UserService.Register(c.Request().Context(), usersvc.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        models.Role(req.Role),
		Phone:       req.Phone,
		Address:     req.Address,
		FarmName:    req.FarmName,
		Description: req.Description,
	})
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(user))
}

func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	if err := r.SessionService.End(c.Request().Context()); err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "signed out"})
}

func (r *Routers) Session(c echo.Context) error {
	const op = "http.routers.Session"

	user, err := r.SessionService.Current(c.Request().Context())
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

func (r *Routers) ListUsers(c echo.Context) error {
	const op = "http.routers.ListUsers"

	users, err := r.UserService.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(users))
}

func (r *Routers) UpdateProfile(c echo.Context) error {
	const op = "http.routers.UpdateProfile"

	var patch models.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	user, err := r.UserService.UpdateProfile(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

func (r *Routers) BlockUser(c echo.Context) error {
	const op = "http.routers.BlockUser"

	var req request.BlockUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	user, err := r.UserService.SetBlocked(c.Request().Context(), c.Param("id"), req.Blocked)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

func (r *Routers) DeleteUser(c echo.Context) error {
	const op = "http.routers.DeleteUser"

	if err := r.UserService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) ListProducts(c echo.Context) error {
	const op = "http.routers.ListProducts"

	ctx := c.Request().Context()

	if sellerID := c.QueryParam("seller_id"); sellerID != "" {
		products, err := r.ProductService.ListBySeller(ctx, sellerID)
		if err != nil {
			return r.errorJSON(c, op, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(products))
	}

	products, err := r.ProductService.Search(ctx, c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(products))
}

func (r *Routers) GetProduct(c echo.Context) error {
	const op = "http.routers.GetProduct"

	product, err := r.ProductService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.errorJSON(c, op, err)
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(product))
}

func (r *Routers) CreateProduct(c echo.Context) error {
	const op = "http.routers.CreateProduct"

	ctx := c.Request().Context()

	seller, err := r.SessionService.Current(ctx)
	if err != nil {
		return r.errorJSON(c, op, err)
	}
	if seller == nil {
		return c.JSON(http.StatusUnauthorized, response.ErrSessionRequired)
	}

	var req request.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	product, err := r.ProductService.CreateProduct(ctx, productsvc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		SellerID:    seller.ID,
	})
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(product))
}

func (r *Routers) UpdateProduct(c echo.Context) error {
	const op = "http.routers.UpdateProduct"

	var patch models.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	product, err := r.ProductService.UpdateProduct(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return r.errorJSON(c, op, err)
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(product))
}

func (r *Routers) DeleteProduct(c echo.Context) error {
	const op = "http.routers.DeleteProduct"

	if err := r.ProductService.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) GetCart(c echo.Context) error {
	const op = "http.routers.GetCart"

	ctx := c.Request().Context()

	items, err := r.CartService.Items(ctx)
	if err != nil {
		return r.errorJSON(c, op, err)
	}
	total, err := r.CartService.Total(ctx)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]interface{}{
		"items": items,
		"total": total,
	}))
}

func (r *Routers) AddCartItem(c echo.Context) error {
	const op = "http.routers.AddCartItem"

	var req request.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	items, err := r.CartService.Add(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

func (r *Routers) SetCartQuantity(c echo.Context) error {
	const op = "http.routers.SetCartQuantity"

	var req request.SetCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	items, err := r.CartService.SetQuantity(c.Request().Context(), c.Param("productId"), req.Quantity)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

func (r *Routers) RemoveCartItem(c echo.Context) error {
	const op = "http.routers.RemoveCartItem"

	items, err := r.CartService.Remove(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

func (r *Routers) ClearCart(c echo.Context) error {
	const op = "http.routers.ClearCart"

	if err := r.CartService.Clear(c.Request().Context()); err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// errorJSON maps service errors onto the API's status codes and envelope.
func (r *Routers) errorJSON(c echo.Context, op string, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Status:     "error",
			Error:      "validation_failed",
			Violations: verr.Violations,
		})
	}

	switch {
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, usersvc.ErrAccountBlocked):
		return c.JSON(http.StatusForbidden, response.ErrAccountBlocked)
	case errors.Is(err, usersvc.ErrEmailTaken):
		return c.JSON(http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, usersvc.ErrUserNotFound), errors.Is(err, cartsvc.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	}

	r.log.Error("request failed", slog.String("op", op), sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

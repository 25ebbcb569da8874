package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beast-tins/internal/middleware"
	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// authedRequest builds a request carrying an authenticated user ID, the
// way the JWT middleware would.
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestCartHandler_Get(t *testing.T) {
	userID := uuid.New()
	product := &model.Product{ID: uuid.New(), Price: 11.99}
	cart := &model.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []model.CartItem{
			{ID: uuid.New(), ProductID: product.ID, Quantity: 2, Product: product},
		},
	}

	mockService := new(MockCartService)
	mockService.On("GetCart", mock.Anything, userID).Return(cart, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	req := authedRequest(http.MethodGet, "/api/cart", nil, userID)
	w := httptest.NewRecorder()
	h.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 2, resp.ItemCount)
	assert.InDelta(t, 23.98, resp.Subtotal, 0.001)
}

func TestCartHandler_Get_NoCart(t *testing.T) {
	userID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("GetCart", mock.Anything, userID).Return(nil, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	req := authedRequest(http.MethodGet, "/api/cart", nil, userID)
	w := httptest.NewRecorder()
	h.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Nil(t, resp.Cart)
	assert.Zero(t, resp.ItemCount)
}

func TestCartHandler_Get_Unauthenticated(t *testing.T) {
	h := NewCartHandler(new(MockCartService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartHandler_AddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &model.Cart{ID: uuid.New(), UserID: userID}

	mockService := new(MockCartService)
	mockService.On("AddToCart", mock.Anything, userID, productID, 3).Return(cart, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(model.AddItemRequest{ProductID: productID, Quantity: 3})
	req := authedRequest(http.MethodPost, "/api/cart/items", body, userID)
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_AddItem_DefaultsQuantityToOne(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &model.Cart{ID: uuid.New(), UserID: userID}

	mockService := new(MockCartService)
	mockService.On("AddToCart", mock.Anything, userID, productID, 1).Return(cart, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(model.AddItemRequest{ProductID: productID})
	req := authedRequest(http.MethodPost, "/api/cart/items", body, userID)
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_AddItem_InsufficientStock(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("AddToCart", mock.Anything, userID, productID, 5).
		Return(nil, model.ErrInsufficientStock)

	h := NewCartHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(model.AddItemRequest{ProductID: productID, Quantity: 5})
	req := authedRequest(http.MethodPost, "/api/cart/items", body, userID)
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInsufficientStock, resp.Code)
}

func TestCartHandler_AddItem_InvalidBody(t *testing.T) {
	h := NewCartHandler(new(MockCartService), zerolog.Nop())

	req := authedRequest(http.MethodPost, "/api/cart/items", []byte("{not json"), uuid.New())
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_UpdateItem(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	cart := &model.Cart{ID: uuid.New(), UserID: userID}

	mockService := new(MockCartService)
	mockService.On("UpdateQuantity", mock.Anything, userID, itemID, 4).Return(cart, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(model.UpdateItemRequest{Quantity: 4})
	req := authedRequest(http.MethodPut, "/api/cart/items/"+itemID.String(), body, userID)
	req.SetPathValue("id", itemID.String())
	w := httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_UpdateItem_BadID(t *testing.T) {
	h := NewCartHandler(new(MockCartService), zerolog.Nop())

	req := authedRequest(http.MethodPut, "/api/cart/items/not-a-uuid", []byte(`{"quantity":1}`), uuid.New())
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_RemoveItem_NotFound(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("RemoveItem", mock.Anything, userID, itemID).
		Return(nil, model.ErrCartItemNotFound)

	h := NewCartHandler(mockService, zerolog.Nop())

	req := authedRequest(http.MethodDelete, "/api/cart/items/"+itemID.String(), nil, userID)
	req.SetPathValue("id", itemID.String())
	w := httptest.NewRecorder()
	h.RemoveItem(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	userID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("ClearCart", mock.Anything, userID).Return(nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	req := authedRequest(http.MethodDelete, "/api/cart", nil, userID)
	w := httptest.NewRecorder()
	h.Clear(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

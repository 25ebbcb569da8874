package service

import (
	"context"
	"testing"
	"time"

	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_GetByID_Owner(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	order := &model.Order{ID: uuid.New(), UserID: userID, Status: model.StatusPendingPayment}

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	got, err := svc.GetByID(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderService_GetByID_WrongUser(t *testing.T) {
	ctx := context.Background()
	order := &model.Order{ID: uuid.New(), UserID: uuid.New()}

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	_, err := svc.GetByID(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("GetByID", ctx, orderID).Return(nil, nil)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	_, err := svc.GetByID(ctx, uuid.New(), orderID)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_UpdateStatus_Allowed(t *testing.T) {
	ctx := context.Background()
	order := &model.Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		TransactionID: "BEAST-1A2B3C4D",
		Status:        model.StatusPendingPayment,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockNotifications := new(MockNotificationService)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("UpdateStatus", ctx, order.ID, model.StatusPendingPayment, model.StatusPaymentVerified).Return(nil)
	mockNotifications.On("Notify", ctx, model.NotificationStatusChange,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("*uuid.UUID")).Return()

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), mockNotifications, zerolog.Nop())

	updated, err := svc.UpdateStatus(ctx, order.ID, "payment_verified")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaymentVerified, updated.Status)

	mockOrderRepo.AssertExpectations(t)
	mockNotifications.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	order := &model.Order{ID: uuid.New(), Status: model.StatusPendingPayment}

	mockOrderRepo := new(MockOrderRepository)
	mockNotifications := new(MockNotificationService)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), mockNotifications, zerolog.Nop())

	// Skipping straight to delivered is not allowed.
	_, err := svc.UpdateStatus(ctx, order.ID, "delivered")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
	mockNotifications.AssertNotCalled(t, "Notify")
}

func TestOrderService_UpdateStatus_TerminalOrder(t *testing.T) {
	ctx := context.Background()
	order := &model.Order{ID: uuid.New(), Status: model.StatusCancelled}

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	_, err := svc.UpdateStatus(ctx, order.ID, "preparing")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	_, err := svc.UpdateStatus(ctx, uuid.New(), "shipped")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	mockOrderRepo.AssertNotCalled(t, "GetByID")
}

func TestOrderService_UpdateStatus_LostRace(t *testing.T) {
	ctx := context.Background()
	order := &model.Order{ID: uuid.New(), Status: model.StatusPendingPayment}

	mockOrderRepo := new(MockOrderRepository)
	mockNotifications := new(MockNotificationService)
	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	// Another admin moved the order first; the conditional update misses.
	mockOrderRepo.On("UpdateStatus", ctx, order.ID, model.StatusPendingPayment, model.StatusPaymentVerified).
		Return(model.ErrInvalidTransition)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), mockNotifications, zerolog.Nop())

	_, err := svc.UpdateStatus(ctx, order.ID, "payment_verified")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	mockNotifications.AssertNotCalled(t, "Notify")
}

func TestOrderService_AttachReference(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	mockNotifications := new(MockNotificationService)
	mockOrderRepo.On("SetEtransferReference", ctx, orderID, userID, "REF-12345").Return(nil)
	mockNotifications.On("Notify", ctx, model.NotificationReferenceSubmitted,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("*uuid.UUID")).Return()

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), mockNotifications, zerolog.Nop())

	require.NoError(t, svc.AttachReference(ctx, userID, orderID, "REF-12345"))

	mockOrderRepo.AssertExpectations(t)
	mockNotifications.AssertExpectations(t)
}

func TestOrderService_AttachReference_Empty(t *testing.T) {
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	err := svc.AttachReference(ctx, uuid.New(), uuid.New(), "")
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)

	mockOrderRepo.AssertNotCalled(t, "SetEtransferReference")
}

func TestOrderService_AttachReference_NotOwned(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("SetEtransferReference", ctx, orderID, userID, "REF-1").Return(model.ErrOrderNotFound)

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	err := svc.AttachReference(ctx, userID, orderID, "REF-1")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_Stats(t *testing.T) {
	ctx := context.Background()

	recent := []model.Order{
		{ID: uuid.New(), Status: model.StatusPaymentVerified, TotalAmount: 33.97, CreatedAt: time.Now()},
	}
	lowStock := []model.Product{
		{ID: uuid.New(), Name: "Midnight Cocoa", InventoryCount: 8},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo.On("Stats", ctx).Return(12, 204.50, 7, recent, nil)
	mockProductRepo.On("InventoryStats", ctx).Return(5, lowStock, 1, nil)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, new(MockNotificationService), zerolog.Nop())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalOrders)
	assert.InDelta(t, 204.50, stats.Revenue, 0.001)
	assert.Equal(t, 7, stats.Customers)
	assert.Equal(t, 5, stats.ProductCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.Len(t, stats.RecentOrders, 1)
	assert.Len(t, stats.LowStockProducts, 1)
}

func TestOrderService_ListAll_ClampsLimit(t *testing.T) {
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("ListAll", ctx, 50, 0).Return([]model.Order{}, nil).Once()
	mockOrderRepo.On("ListAll", ctx, 200, 0).Return([]model.Order{}, nil).Once()

	svc := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockNotificationService), zerolog.Nop())

	_, err := svc.ListAll(ctx, 0, -5)
	require.NoError(t, err)

	_, err = svc.ListAll(ctx, 1000, 0)
	require.NoError(t, err)

	mockOrderRepo.AssertExpectations(t)
}

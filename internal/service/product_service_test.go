package service

import (
	"bytes"
	"context"
	"testing"

	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_List_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	filter := model.ProductFilter{Category: "mints"}

	mockRepo := new(MockProductRepository)
	mockRepo.On("List", ctx, filter, 20, 0).Return([]model.Product{}, nil).Once()
	mockRepo.On("List", ctx, filter, 100, 0).Return([]model.Product{}, nil).Once()

	svc := NewProductService(mockRepo, new(MockImageStore), zerolog.Nop())

	_, err := svc.List(ctx, filter, 0, -1)
	require.NoError(t, err)

	_, err = svc.List(ctx, filter, 500, 0)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	svc := NewProductService(mockRepo, new(MockImageStore), zerolog.Nop())

	_, err := svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductService_Create_Success(t *testing.T) {
	ctx := context.Background()

	input := &model.ProductInput{
		Name:           "Arctic Mint",
		Description:    "Protein-packed mints with a glacial bite.",
		Price:          11.99,
		InventoryCount: 120,
		Available:      true,
		Featured:       true,
	}

	mockRepo := new(MockProductRepository)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockRepo, new(MockImageStore), zerolog.Nop())

	product, err := svc.Create(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Arctic Mint", product.Name)
	assert.InDelta(t, 11.99, product.Price, 0.001)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestProductService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(new(MockProductRepository), new(MockImageStore), zerolog.Nop())

	cases := []struct {
		name  string
		input *model.ProductInput
	}{
		{"missing name", &model.ProductInput{Price: 1}},
		{"negative price", &model.ProductInput{Name: "X", Price: -1}},
		{"negative inventory", &model.ProductInput{Name: "X", Price: 1, InventoryCount: -2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			require.Error(t, err)

			var domainErr *model.DomainError
			assert.ErrorAs(t, err, &domainErr)
		})
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	svc := NewProductService(mockRepo, new(MockImageStore), zerolog.Nop())

	_, err := svc.Update(ctx, id, &model.ProductInput{Name: "X", Price: 1})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestProductService_AttachImage(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	product := &model.Product{ID: id, Name: "Arctic Mint"}
	body := bytes.NewReader([]byte("png bytes"))

	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockRepo.On("GetByID", ctx, id).Return(product, nil)
	mockImages.On("Put", ctx, id.String()+".png", "image/png", body).
		Return("s3://tins-images/product-images/"+id.String()+".png", nil)
	mockRepo.On("SetImage", ctx, id, "s3://tins-images/product-images/"+id.String()+".png").Return(nil)

	svc := NewProductService(mockRepo, mockImages, zerolog.Nop())

	ref, err := svc.AttachImage(ctx, id, "tin.png", "image/png", body)
	require.NoError(t, err)
	assert.Contains(t, ref, id.String())

	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestProductService_AttachImage_ProductMissing(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	svc := NewProductService(mockRepo, mockImages, zerolog.Nop())

	_, err := svc.AttachImage(ctx, id, "tin.png", "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	mockImages.AssertNotCalled(t, "Put")
}

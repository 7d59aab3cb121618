package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

type fakeCartManager struct {
	addItemFn func(userID, variantID int64, quantity int) (int64, error)
	updateFn  func(userID, cartItemID int64, quantity int) error
	removeFn  func(userID, cartItemID int64) error
	viewFn    func(userID int64) (*models.CartView, error)
}

func (f *fakeCartManager) View(ctx context.Context, q repository.Querier, userID int64) (*models.CartView, error) {
	return f.viewFn(userID)
}

func (f *fakeCartManager) AddItem(ctx context.Context, q repository.Querier, userID, variantID int64, quantity int) (int64, error) {
	return f.addItemFn(userID, variantID, quantity)
}

func (f *fakeCartManager) UpdateItemQuantity(ctx context.Context, q repository.Querier, userID, cartItemID int64, quantity int) error {
	return f.updateFn(userID, cartItemID, quantity)
}

func (f *fakeCartManager) RemoveItem(ctx context.Context, q repository.Querier, userID, cartItemID int64) error {
	return f.removeFn(userID, cartItemID)
}

type fakeVariantReader struct {
	getErr error
}

func (f *fakeVariantReader) GetVariant(ctx context.Context, q repository.Querier, variantID int64) (int64, int, error) {
	if f.getErr != nil {
		return 0, 0, f.getErr
	}
	return 100000, 10, nil
}

func TestCartServiceAddItem(t *testing.T) {
	carts := &fakeCartManager{
		addItemFn: func(userID, variantID int64, quantity int) (int64, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, int64(11), variantID)
			assert.Equal(t, 2, quantity)
			return 5, nil
		},
	}
	svc := NewCartService(nil, carts, &fakeVariantReader{}, zerolog.Nop())

	itemID, err := svc.AddItem(context.Background(), 1, 11, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(5), itemID)
}

func TestCartServiceAddItemRejectsZeroQuantity(t *testing.T) {
	svc := NewCartService(nil, &fakeCartManager{}, &fakeVariantReader{}, zerolog.Nop())

	_, err := svc.AddItem(context.Background(), 1, 11, 0)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCartServiceAddItemUnknownVariant(t *testing.T) {
	reader := &fakeVariantReader{getErr: &apperrors.VariantNotFoundError{VariantID: 999}}
	svc := NewCartService(nil, &fakeCartManager{}, reader, zerolog.Nop())

	_, err := svc.AddItem(context.Background(), 1, 999, 1)

	var variantErr *apperrors.VariantNotFoundError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, int64(999), variantErr.VariantID)
}

func TestCartServiceUpdateItemQuantityRejectsNonPositive(t *testing.T) {
	svc := NewCartService(nil, &fakeCartManager{}, &fakeVariantReader{}, zerolog.Nop())

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, svc.UpdateItemQuantity(context.Background(), 1, 5, 0), &validationErr)
	assert.ErrorAs(t, svc.UpdateItemQuantity(context.Background(), 1, 5, -2), &validationErr)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopweb/shopweb-api/internal/apperrors"
	"github.com/shopweb/shopweb-api/internal/models"
	"github.com/shopweb/shopweb-api/internal/repository"
)

type mockPromotionStore struct {
	getByCodeFn func(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error)
}

func (m *mockPromotionStore) GetByCode(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error) {
	return m.getByCodeFn(ctx, q, code)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPromotionEvaluatorApply(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	active := func(p models.Promotion) *models.Promotion {
		p.StartDate = now.Add(-24 * time.Hour)
		p.EndDate = now.Add(24 * time.Hour)
		return &p
	}

	tests := []struct {
		name        string
		code        string
		totalAmount int64
		promotion   *models.Promotion
		storeErr    error
		wantTotal   int64
		wantPromoID int64
		wantErr     error
	}{
		{
			name:        "percentage discount",
			code:        "SAVE10",
			totalAmount: 100000,
			promotion: active(models.Promotion{
				ID:            1,
				Code:          "SAVE10",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: 10,
			}),
			wantTotal:   90000,
			wantPromoID: 1,
		},
		{
			name:        "fixed discount",
			code:        "FLAT20K",
			totalAmount: 150000,
			promotion: active(models.Promotion{
				ID:            2,
				Code:          "FLAT20K",
				DiscountType:  models.DiscountFixed,
				DiscountValue: 20000,
			}),
			wantTotal:   130000,
			wantPromoID: 2,
		},
		{
			name:        "fixed discount clamps at zero",
			code:        "FLAT20K",
			totalAmount: 10000,
			promotion: active(models.Promotion{
				ID:            2,
				Code:          "FLAT20K",
				DiscountType:  models.DiscountFixed,
				DiscountValue: 20000,
			}),
			wantTotal:   0,
			wantPromoID: 2,
		},
		{
			name:        "unknown code",
			code:        "NOPE",
			totalAmount: 100000,
			storeErr:    apperrors.ErrPromotionNotFound,
			wantErr:     apperrors.ErrPromotionNotFound,
		},
		{
			name:        "not started yet",
			code:        "SOON",
			totalAmount: 100000,
			promotion: &models.Promotion{
				ID:            3,
				Code:          "SOON",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: 10,
				StartDate:     now.Add(time.Hour),
				EndDate:       now.Add(48 * time.Hour),
			},
			wantErr: apperrors.ErrPromotionNotStarted,
		},
		{
			name:        "expired",
			code:        "OLD",
			totalAmount: 100000,
			promotion: &models.Promotion{
				ID:            4,
				Code:          "OLD",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: 10,
				StartDate:     now.Add(-48 * time.Hour),
				EndDate:       now.Add(-time.Hour),
			},
			wantErr: apperrors.ErrPromotionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockPromotionStore{
				getByCodeFn: func(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error) {
					assert.Equal(t, tt.code, code)
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return tt.promotion, nil
				},
			}

			evaluator := &PromotionEvaluator{
				promotions: store,
				now:        fixedClock(now),
			}

			result, err := evaluator.Apply(context.Background(), nil, tt.code, tt.totalAmount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPromoID, result.PromotionID)
			assert.Equal(t, tt.wantTotal, result.NewTotal)
		})
	}
}

func TestPromotionEvaluatorApplyBelowMinimum(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	store := &mockPromotionStore{
		getByCodeFn: func(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error) {
			return &models.Promotion{
				ID:            5,
				Code:          "BIGSPEND",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: 15,
				StartDate:     now.Add(-time.Hour),
				EndDate:       now.Add(time.Hour),
				MinOrderValue: 500000,
			}, nil
		},
	}

	evaluator := &PromotionEvaluator{promotions: store, now: fixedClock(now)}

	result, err := evaluator.Apply(context.Background(), nil, "BIGSPEND", 100000)

	var belowMin *apperrors.BelowMinimumError
	require.ErrorAs(t, err, &belowMin)
	assert.Equal(t, int64(500000), belowMin.Minimum)
	assert.Nil(t, result)
}

func TestPromotionEvaluatorApplyValidation(t *testing.T) {
	evaluator := &PromotionEvaluator{now: time.Now}

	var validationErr *apperrors.ValidationError

	_, err := evaluator.Apply(context.Background(), nil, "", 100000)
	assert.ErrorAs(t, err, &validationErr)

	_, err = evaluator.Apply(context.Background(), nil, "SAVE10", 0)
	assert.ErrorAs(t, err, &validationErr)
}

func TestPromotionEvaluatorBoundaryTimesInclusive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	store := &mockPromotionStore{
		getByCodeFn: func(ctx context.Context, q repository.Querier, code string) (*models.Promotion, error) {
			return &models.Promotion{
				ID:            6,
				Code:          "EDGE",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: 10,
				StartDate:     now,
				EndDate:       now,
			}, nil
		},
	}

	evaluator := &PromotionEvaluator{promotions: store, now: fixedClock(now)}

	result, err := evaluator.Apply(context.Background(), nil, "EDGE", 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), result.NewTotal)
}

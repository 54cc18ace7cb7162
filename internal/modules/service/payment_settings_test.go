package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/modules/model"
)

func paymentTestConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{SettingsCacheTTLSec: 60},
	}
}

func TestPaymentSettingsService_Active_CachesReads(t *testing.T) {
	settings := &model.PaymentSettings{
		ID:        uuid.New(),
		UPIID:     "sangam@upi",
		AccessFee: 500,
		IsActive:  true,
	}

	repo := new(MockPaymentSettingsRepo)
	// One DB read, then the cache serves
	repo.On("GetActive", mock.Anything).Return(settings, nil).Once()

	svc := NewPaymentSettingsService(repo, testRedis(t), paymentTestConfig(), zap.NewNop())

	first, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sangam@upi", first.UPIID)

	second, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	repo.AssertExpectations(t)
}

func TestPaymentSettingsService_Active_Unconfigured(t *testing.T) {
	repo := new(MockPaymentSettingsRepo)
	repo.On("GetActive", mock.Anything).Return(nil, nil)

	svc := NewPaymentSettingsService(repo, testRedis(t), paymentTestConfig(), zap.NewNop())

	got, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentSettingsService_Update(t *testing.T) {
	adminID := uuid.New()
	admin := Identity{UserID: adminID, Role: model.RoleAdmin}

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc := NewPaymentSettingsService(new(MockPaymentSettingsRepo), testRedis(t), paymentTestConfig(), zap.NewNop())

		_, err := svc.Update(context.Background(),
			Identity{UserID: uuid.New(), Role: model.RoleUser},
			PaymentSettingsInput{UPIID: "x@upi", AccessFee: 500})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("requires positive fee", func(t *testing.T) {
		svc := NewPaymentSettingsService(new(MockPaymentSettingsRepo), testRedis(t), paymentTestConfig(), zap.NewNop())

		_, err := svc.Update(context.Background(), admin,
			PaymentSettingsInput{UPIID: "x@upi", AccessFee: 0})
		assert.True(t, IsValidation(err))
	})

	t.Run("update invalidates the cached read", func(t *testing.T) {
		rdb := testRedis(t)

		repo := new(MockPaymentSettingsRepo)
		repo.On("GetActive", mock.Anything).Return(&model.PaymentSettings{
			UPIID: "old@upi", AccessFee: 500, IsActive: true,
		}, nil).Once()
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.PaymentSettings")).Return(nil)
		repo.On("GetActive", mock.Anything).Return(&model.PaymentSettings{
			UPIID: "new@upi", AccessFee: 750, IsActive: true,
		}, nil).Once()

		svc := NewPaymentSettingsService(repo, rdb, paymentTestConfig(), zap.NewNop())

		before, err := svc.Active(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "old@upi", before.UPIID)

		updated, err := svc.Update(context.Background(), admin,
			PaymentSettingsInput{UPIID: "new@upi", AccessFee: 750})
		require.NoError(t, err)
		assert.Equal(t, &adminID, updated.LastUpdatedBy)

		after, err := svc.Active(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new@upi", after.UPIID)

		repo.AssertExpectations(t)
	})
}

package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"go.uber.org/zap"
)

const paymentSettingsCacheKey = "payment:settings:active"

type PaymentSettingsInput struct {
	UPIID     string
	QRCodeKey string
	AccessFee float64
}

// PaymentSettingsService serves the payment destination shown on the
// access-request form. Reads go through a short-lived Redis cache since
// every visitor opening the form hits this.
type PaymentSettingsService interface {
	Active(ctx context.Context) (*model.PaymentSettings, error)
	Update(ctx context.Context, admin Identity, in PaymentSettingsInput) (*model.PaymentSettings, error)
}

type paymentSettingsService struct {
	settings repo.PaymentSettingsRepo
	rdb      *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewPaymentSettingsService(settings repo.PaymentSettingsRepo, rdb *redis.Client, cfg *config.Config, log *zap.Logger) PaymentSettingsService {
	return &paymentSettingsService{
		settings: settings,
		rdb:      rdb,
		cacheTTL: time.Duration(cfg.Payment.SettingsCacheTTLSec) * time.Second,
		log:      log,
	}
}

func (s *paymentSettingsService) Active(ctx context.Context) (*model.PaymentSettings, error) {
	if raw, err := s.rdb.Get(ctx, paymentSettingsCacheKey).Bytes(); err == nil {
		var cached model.PaymentSettings
		if err := sonic.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// Unreadable cache entries are dropped and refilled from the DB
		s.rdb.Del(ctx, paymentSettingsCacheKey)
	}

	active, err := s.settings.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	if raw, err := sonic.Marshal(active); err == nil {
		if err := s.rdb.Set(ctx, paymentSettingsCacheKey, raw, s.cacheTTL).Err(); err != nil {
			s.log.Warn("failed to cache payment settings", zap.Error(err))
		}
	}
	return active, nil
}

func (s *paymentSettingsService) Update(ctx context.Context, admin Identity, in PaymentSettingsInput) (*model.PaymentSettings, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}
	if in.UPIID == "" {
		return nil, &ValidationError{Field: "upi_id", Reason: "required"}
	}
	if in.AccessFee <= 0 {
		return nil, &ValidationError{Field: "access_fee", Reason: "must be positive"}
	}

	adminID := admin.UserID
	next := &model.PaymentSettings{
		UPIID:         in.UPIID,
		QRCodeKey:     in.QRCodeKey,
		AccessFee:     in.AccessFee,
		LastUpdatedBy: &adminID,
	}
	if err := s.settings.Upsert(ctx, next); err != nil {
		return nil, err
	}

	if err := s.rdb.Del(ctx, paymentSettingsCacheKey).Err(); err != nil {
		s.log.Warn("failed to invalidate payment settings cache", zap.Error(err))
	}

	s.log.Info("payment settings updated", zap.String("admin_id", adminID.String()))
	return next, nil
}

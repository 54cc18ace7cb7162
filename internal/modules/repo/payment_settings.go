package repo

import (
	"context"
	"errors"

	"github.com/sangamhq/sangam/internal/modules/model"
	"gorm.io/gorm"
)

type PaymentSettingsRepo interface {
	// GetActive returns the single active settings row, or nil when the
	// admin has not configured payments yet.
	GetActive(ctx context.Context) (*model.PaymentSettings, error)
	// Upsert replaces the active settings in one transaction: the old
	// active row (if any) is deactivated before the new one is inserted,
	// keeping the partial unique index on is_active satisfied.
	Upsert(ctx context.Context, s *model.PaymentSettings) error
}

type paymentSettingsRepo struct{ db *gorm.DB }

func NewPaymentSettingsRepo(db *gorm.DB) PaymentSettingsRepo {
	return &paymentSettingsRepo{db: db}
}

func (r *paymentSettingsRepo) GetActive(ctx context.Context) (*model.PaymentSettings, error) {
	var s model.PaymentSettings
	err := r.db.WithContext(ctx).Where("is_active = TRUE").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *paymentSettingsRepo) Upsert(ctx context.Context, s *model.PaymentSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PaymentSettings{}).
			Where("is_active = TRUE").
			Update("is_active", false).Error; err != nil {
			return err
		}
		s.IsActive = true
		return tx.Create(s).Error
	})
}

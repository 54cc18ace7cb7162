package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/infra/blob"
	"github.com/sangamhq/sangam/internal/infra/cache"
	"github.com/sangamhq/sangam/internal/infra/db"
	"github.com/sangamhq/sangam/internal/infra/logger"
	"github.com/sangamhq/sangam/internal/modules/handler"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"github.com/sangamhq/sangam/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(
				&model.User{},
				&model.Profile{},
				&model.ProfileLike{},
				&model.AccessClaim{},
				&model.Inquiry{},
				&model.PaymentSettings{},
			); err != nil {
				return nil, err
			}

			// Partial unique indexes gorm tags cannot express. The first
			// one backs the one-live-claim-per-pair rule: at most one
			// pending or approved claim per (viewer, profile), while any
			// number of rejected ones stay behind as history.
			if err := d.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_active_pair
				ON access_claims (viewer_id, profile_id)
				WHERE status IN ('pending', 'approved')`).Error; err != nil {
				return nil, err
			}
			if err := d.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_settings_single_active
				ON payment_settings (is_active)
				WHERE is_active`).Error; err != nil {
				return nil, err
			}
		}

		// ensure seed admin exists
		if err := EnsureAdminExists(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}

		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProfileRepo, error) {
		return repo.NewProfileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AccessClaimRepo, error) {
		return repo.NewAccessClaimRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.InquiryRepo, error) {
		return repo.NewInquiryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PaymentSettingsRepo, error) {
		return repo.NewPaymentSettingsRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProfileService, error) {
		return service.NewProfileService(
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AccessService, error) {
		return service.NewAccessService(
			do.MustInvoke[repo.AccessClaimRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.InquiryService, error) {
		return service.NewInquiryService(
			do.MustInvoke[repo.InquiryRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PaymentSettingsService, error) {
		return service.NewPaymentSettingsService(
			do.MustInvoke[repo.PaymentSettingsRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AssetService, error) {
		return service.NewAssetService(
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[func() time.Duration](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AdminService, error) {
		return service.NewAdminService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[repo.AccessClaimRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProfileHandler, error) {
		return handler.NewProfileHandler(
			do.MustInvoke[service.ProfileService](i),
			do.MustInvoke[service.AccessService](i),
			do.MustInvoke[service.AssetService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AccessRequestHandler, error) {
		return handler.NewAccessRequestHandler(
			do.MustInvoke[service.AccessService](i),
			do.MustInvoke[service.AssetService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.InquiryHandler, error) {
		return handler.NewInquiryHandler(do.MustInvoke[service.InquiryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PaymentSettingsHandler, error) {
		return handler.NewPaymentSettingsHandler(
			do.MustInvoke[service.PaymentSettingsService](i),
			do.MustInvoke[service.AssetService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AdminHandler, error) {
		return handler.NewAdminHandler(do.MustInvoke[service.AdminService](i)), nil
	})

	return inj
}

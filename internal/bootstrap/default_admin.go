package bootstrap

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/modules/model"
)

// EnsureAdminExists creates or realigns the seed admin account when the
// service starts. Without it a fresh deployment has no way to approve
// access requests.
func EnsureAdminExists(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Auth.AdminEmail))
	password := cfg.Auth.AdminPassword

	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var admin model.User
	err = db.WithContext(ctx).Where("email = ?", email).First(&admin).Error

	switch {
	case err == nil:
		updates := map[string]interface{}{
			"password_hash": string(hash),
			"role":          model.RoleAdmin,
			"is_active":     true,
		}
		if uErr := db.WithContext(ctx).Model(&admin).Updates(updates).Error; uErr != nil {
			return uErr
		}
		log.Sugar().Infow("seed admin exists", "user", admin.ID)
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		newAdmin := model.User{
			FullName:     "Administrator",
			Email:        email,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if cErr := db.WithContext(ctx).Create(&newAdmin).Error; cErr != nil {
			return cErr
		}
		log.Sugar().Infow("seed admin created", "user", newAdmin.ID)
		return nil

	default:
		return err
	}
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardStats is the aggregate view behind the admin dashboard.
type DashboardStats struct {
	Users    int64                   `json:"users"`
	Profiles *repo.ProfileCounts     `json:"profiles"`
	Claims   *repo.ClaimStatusCounts `json:"access_requests"`
}

type AdminService interface {
	ListUsers(ctx context.Context, admin Identity) ([]*model.User, error)
	DeleteUser(ctx context.Context, admin Identity, userID uuid.UUID) error
	Stats(ctx context.Context, admin Identity) (*DashboardStats, error)
}

type adminService struct {
	users    repo.UserRepo
	profiles repo.ProfileRepo
	claims   repo.AccessClaimRepo
	log      *zap.Logger
}

func NewAdminService(users repo.UserRepo, profiles repo.ProfileRepo, claims repo.AccessClaimRepo, log *zap.Logger) AdminService {
	return &adminService{users: users, profiles: profiles, claims: claims, log: log}
}

func (s *adminService) ListUsers(ctx context.Context, admin Identity) ([]*model.User, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *adminService) DeleteUser(ctx context.Context, admin Identity, userID uuid.UUID) error {
	if !admin.IsAdmin() {
		return ErrForbidden
	}
	if admin.UserID == userID {
		return &ValidationError{Field: "id", Reason: "cannot delete your own account"}
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info("user deleted",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", admin.UserID.String()))

	return s.users.Delete(ctx, userID)
}

func (s *adminService) Stats(ctx context.Context, admin Identity) (*DashboardStats, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}

	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = s.users.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		stats.Profiles, err = s.profiles.Counts(ctx)
		return
	})
	g.Go(func() (err error) {
		stats.Claims, err = s.claims.CountsByStatus(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

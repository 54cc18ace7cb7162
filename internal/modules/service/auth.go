package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"github.com/sangamhq/sangam/internal/pkg/tokens"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Age      *int
	Gender   string
	Phone    string
}

// AuthResult is what both register and login hand back to the client.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users repo.UserRepo
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repo.UserRepo, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{users: users, cfg: cfg, log: log}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.FullName == "" {
		return nil, &ValidationError{Field: "full_name", Reason: "required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if len(in.Password) < 6 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Age:          in.Age,
		Gender:       in.Gender,
		Phone:        in.Phone,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))

	return s.result(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, &ValidationError{Field: "email", Reason: "email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a bad password so the endpoint does not
			// leak which emails are registered
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("failed to record last login", zap.Error(err))
	}
	user.LastLoginAt = &now

	return s.result(user)
}

func (s *authService) result(user *model.User) (*AuthResult, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	token, err := tokens.Sign(s.cfg.Auth.JWTSecret, ttl, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

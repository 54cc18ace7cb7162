package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
)

type MockAccessClaimRepo struct {
	mock.Mock
}

func (m *MockAccessClaimRepo) Create(ctx context.Context, c *model.AccessClaim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAccessClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.AccessClaim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessClaim), args.Error(1)
}

func (m *MockAccessClaimRepo) ExistsUTR(ctx context.Context, utr string) (bool, error) {
	args := m.Called(ctx, utr)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessClaimRepo) FindActiveForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error) {
	args := m.Called(ctx, viewerID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessClaim), args.Error(1)
}

func (m *MockAccessClaimRepo) GetApprovedForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error) {
	args := m.Called(ctx, viewerID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessClaim), args.Error(1)
}

func (m *MockAccessClaimRepo) HasApproved(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, viewerID, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessClaimRepo) Decide(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID, notes string, at time.Time) (int64, error) {
	args := m.Called(ctx, id, status, decidedBy, notes, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccessClaimRepo) ListByViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AccessClaim), args.Error(1)
}

func (m *MockAccessClaimRepo) ListAll(ctx context.Context) ([]*model.AccessClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AccessClaim), args.Error(1)
}

func (m *MockAccessClaimRepo) CountsByStatus(ctx context.Context) (*repo.ClaimStatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ClaimStatusCounts), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Profile, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockProfileRepo) List(ctx context.Context, f repo.ProfileFilters) ([]*model.Profile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) Search(ctx context.Context, term string) ([]*model.Profile, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) Featured(ctx context.Context, limit int) ([]*model.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) Recent(ctx context.Context, limit int) ([]*model.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) AddViews(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProfileRepo) IncAccessRequests(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepo) IncApprovedAccess(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepo) Like(ctx context.Context, profileID, userID uuid.UUID) error {
	args := m.Called(ctx, profileID, userID)
	return args.Error(0)
}

func (m *MockProfileRepo) Unlike(ctx context.Context, profileID, userID uuid.UUID) error {
	args := m.Called(ctx, profileID, userID)
	return args.Error(0)
}

func (m *MockProfileRepo) LikeCount(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepo) Counts(ctx context.Context) (*repo.ProfileCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ProfileCounts), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) Create(ctx context.Context, i *model.Inquiry) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Inquiry, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInquiryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Inquiry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepo) ListAll(ctx context.Context) ([]*model.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inquiry), args.Error(1)
}

type MockPaymentSettingsRepo struct {
	mock.Mock
}

func (m *MockPaymentSettingsRepo) GetActive(ctx context.Context) (*model.PaymentSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentSettings), args.Error(1)
}

func (m *MockPaymentSettingsRepo) Upsert(ctx context.Context, s *model.PaymentSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

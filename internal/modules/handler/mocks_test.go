package handler

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Submit(ctx context.Context, in service.SubmitClaimInput) (*model.AccessClaim, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessClaim), args.Error(1)
}

func (m *MockAccessService) Decide(ctx context.Context, claimID uuid.UUID, approve bool, decider service.Identity, notes string) (*model.AccessClaim, error) {
	args := m.Called(ctx, claimID, approve, decider, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessClaim), args.Error(1)
}

func (m *MockAccessService) HasApprovedAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, viewerID, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessService) CheckAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, *model.AccessClaim, error) {
	args := m.Called(ctx, viewerID, profileID)
	var claim *model.AccessClaim
	if args.Get(1) != nil {
		claim = args.Get(1).(*model.AccessClaim)
	}
	return args.Bool(0), claim, args.Error(2)
}

func (m *MockAccessService) ResolveAccessLevel(ctx context.Context, viewer *service.Identity, p *model.Profile) (model.AccessLevel, error) {
	args := m.Called(ctx, viewer, p)
	return args.Get(0).(model.AccessLevel), args.Error(1)
}

func (m *MockAccessService) ListForViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AccessClaim), args.Error(1)
}

func (m *MockAccessService) ListAll(ctx context.Context) ([]*model.AccessClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AccessClaim), args.Error(1)
}

func (m *MockAccessService) CountsByStatus(ctx context.Context) (*repo.ClaimStatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ClaimStatusCounts), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetOwn(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) UpsertOwn(ctx context.Context, ownerID uuid.UUID, in service.ProfileInput) (*model.Profile, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) CreateByAdmin(ctx context.Context, admin service.Identity, in service.ProfileInput) (*model.Profile, error) {
	args := m.Called(ctx, admin, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, id uuid.UUID, actor service.Identity, in service.ProfileInput) (*model.Profile, error) {
	args := m.Called(ctx, id, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) Delete(ctx context.Context, id uuid.UUID, actor service.Identity) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockProfileService) List(ctx context.Context, f repo.ProfileFilters) ([]*model.Profile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileService) Search(ctx context.Context, term string) ([]*model.Profile, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileService) Featured(ctx context.Context, limit int) ([]*model.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileService) Recent(ctx context.Context, limit int) ([]*model.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileService) RecordView(ctx context.Context, id uuid.UUID, viewerKey string) error {
	args := m.Called(ctx, id, viewerKey)
	return args.Error(0)
}

func (m *MockProfileService) Like(ctx context.Context, profileID, userID uuid.UUID) error {
	args := m.Called(ctx, profileID, userID)
	return args.Error(0)
}

func (m *MockProfileService) Unlike(ctx context.Context, profileID, userID uuid.UUID) error {
	args := m.Called(ctx, profileID, userID)
	return args.Error(0)
}

func (m *MockProfileService) Counts(ctx context.Context) (*repo.ProfileCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ProfileCounts), args.Error(1)
}

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	args := m.Called(ctx, fh, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockAssetService) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

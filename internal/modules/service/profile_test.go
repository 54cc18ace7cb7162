package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/modules/model"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestProfileService_UpsertOwn(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates when none exists", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		profiles.On("GetByOwner", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)
		profiles.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*model.Profile)
				assert.Equal(t, ownerID, p.CreatedBy)
				assert.Equal(t, model.ProfileStatusActive, p.Status)
				assert.False(t, p.CreatedByAdmin)
			}).
			Return(nil)

		svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

		p, err := svc.UpsertOwn(context.Background(), ownerID, ProfileInput{
			Name: "Priya", Gender: "Female", Age: 26, Location: "Jaipur",
		})
		require.NoError(t, err)
		assert.Equal(t, "Priya", p.Name)
		profiles.AssertExpectations(t)
	})

	t.Run("updates when one exists, empty fields untouched", func(t *testing.T) {
		existing := &model.Profile{ID: uuid.New(), CreatedBy: ownerID, Name: "Priya"}

		profiles := new(MockProfileRepo)
		profiles.On("GetByOwner", mock.Anything, ownerID).Return(existing, nil)
		profiles.On("Update", mock.Anything, existing.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasName := fields["name"]
			_, hasBio := fields["bio"]
			return !hasName && hasBio
		})).Return(existing, nil)

		svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

		_, err := svc.UpsertOwn(context.Background(), ownerID, ProfileInput{Bio: "updated bio"})
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("rejects underage create", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		profiles.On("GetByOwner", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

		_, err := svc.UpsertOwn(context.Background(), ownerID, ProfileInput{
			Name: "X", Gender: "Male", Age: 17, Location: "Pune",
		})
		assert.True(t, IsValidation(err))
	})
}

func TestProfileService_UpdateDelete_Authorization(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	profile := &model.Profile{ID: uuid.New(), CreatedBy: ownerID, Name: "Priya"}

	tests := []struct {
		name    string
		actor   Identity
		allowed bool
	}{
		{name: "owner", actor: Identity{UserID: ownerID, Role: model.RoleUser}, allowed: true},
		{name: "admin", actor: Identity{UserID: strangerID, Role: model.RoleAdmin}, allowed: true},
		{name: "stranger", actor: Identity{UserID: strangerID, Role: model.RoleUser}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(MockProfileRepo)
			profiles.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)
			if tt.allowed {
				profiles.On("SetStatus", mock.Anything, profile.ID, model.ProfileStatusDeleted).Return(nil)
			}

			svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

			err := svc.Delete(context.Background(), profile.ID, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
			profiles.AssertExpectations(t)
		})
	}
}

func TestProfileService_RecordView_Dedupe(t *testing.T) {
	profileID := uuid.New()

	profiles := new(MockProfileRepo)
	// Only one bump despite two views from the same viewer
	profiles.On("AddViews", mock.Anything, profileID, int64(1)).Return(nil).Once()

	svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

	require.NoError(t, svc.RecordView(context.Background(), profileID, "viewer-a"))
	require.NoError(t, svc.RecordView(context.Background(), profileID, "viewer-a"))
	profiles.AssertExpectations(t)
}

func TestProfileService_RecordView_DistinctViewers(t *testing.T) {
	profileID := uuid.New()

	profiles := new(MockProfileRepo)
	profiles.On("AddViews", mock.Anything, profileID, int64(1)).Return(nil).Twice()

	svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

	require.NoError(t, svc.RecordView(context.Background(), profileID, "viewer-a"))
	require.NoError(t, svc.RecordView(context.Background(), profileID, "viewer-b"))
	profiles.AssertExpectations(t)
}

func TestProfileService_CreateByAdmin(t *testing.T) {
	t.Run("non-admin forbidden", func(t *testing.T) {
		svc := NewProfileService(new(MockProfileRepo), testRedis(t), zap.NewNop())

		_, err := svc.CreateByAdmin(context.Background(),
			Identity{UserID: uuid.New(), Role: model.RoleUser}, ProfileInput{})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin-created profiles are marked and verified", func(t *testing.T) {
		adminID := uuid.New()
		profiles := new(MockProfileRepo)
		profiles.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*model.Profile)
				assert.True(t, p.CreatedByAdmin)
				assert.True(t, p.IsVerified)
				assert.Equal(t, adminID, p.CreatedBy)
			}).
			Return(nil)

		svc := NewProfileService(profiles, testRedis(t), zap.NewNop())

		_, err := svc.CreateByAdmin(context.Background(),
			Identity{UserID: adminID, Role: model.RoleAdmin},
			ProfileInput{Name: "Rohan", Gender: "Male", Age: 29, Location: "Delhi"})
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/modules/model"
)

func TestInquiryService_Submit(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	profile := &model.Profile{ID: profileID, Name: "Priya"}

	t.Run("success denormalizes profile name", func(t *testing.T) {
		inquiries := new(MockInquiryRepo)
		profiles := new(MockProfileRepo)
		profiles.On("GetByID", mock.Anything, profileID).Return(profile, nil)
		inquiries.On("Create", mock.Anything, mock.AnythingOfType("*model.Inquiry")).
			Run(func(args mock.Arguments) {
				i := args.Get(1).(*model.Inquiry)
				assert.Equal(t, "Priya", i.ProfileName)
				assert.Equal(t, model.InquiryStatusPending, i.Status)
			}).
			Return(nil)

		svc := NewInquiryService(inquiries, profiles, zap.NewNop())

		_, err := svc.Submit(context.Background(), SubmitInquiryInput{
			User:      Identity{UserID: userID, Role: model.RoleUser},
			ProfileID: profileID,
			UserName:  "Asha",
			UserEmail: "asha@example.com",
			UserPhone: "9876543210",
			Message:   "Interested in this profile",
		})
		require.NoError(t, err)
		inquiries.AssertExpectations(t)
	})

	t.Run("missing message", func(t *testing.T) {
		svc := NewInquiryService(new(MockInquiryRepo), new(MockProfileRepo), zap.NewNop())

		_, err := svc.Submit(context.Background(), SubmitInquiryInput{
			User:      Identity{UserID: userID},
			ProfileID: profileID,
			UserName:  "Asha",
			UserEmail: "asha@example.com",
			UserPhone: "9876543210",
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown profile", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		profiles.On("GetByID", mock.Anything, profileID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInquiryService(new(MockInquiryRepo), profiles, zap.NewNop())

		_, err := svc.Submit(context.Background(), SubmitInquiryInput{
			User:      Identity{UserID: userID},
			ProfileID: profileID,
			UserName:  "Asha",
			UserEmail: "asha@example.com",
			UserPhone: "9876543210",
			Message:   "hello",
		})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestInquiryService_AdminOperations(t *testing.T) {
	user := Identity{UserID: uuid.New(), Role: model.RoleUser}
	admin := Identity{UserID: uuid.New(), Role: model.RoleAdmin}
	inquiryID := uuid.New()

	t.Run("list all requires admin", func(t *testing.T) {
		svc := NewInquiryService(new(MockInquiryRepo), new(MockProfileRepo), zap.NewNop())

		_, err := svc.ListAll(context.Background(), user)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("update validates status", func(t *testing.T) {
		svc := NewInquiryService(new(MockInquiryRepo), new(MockProfileRepo), zap.NewNop())

		_, err := svc.Update(context.Background(), inquiryID, admin,
			InquiryUpdateInput{Status: "archived"})
		assert.True(t, IsValidation(err))
	})

	t.Run("update applies provided fields", func(t *testing.T) {
		read := true
		inquiries := new(MockInquiryRepo)
		inquiries.On("Update", mock.Anything, inquiryID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == model.InquiryStatusContacted && fields["is_read"] == true
		})).Return(&model.Inquiry{ID: inquiryID, Status: model.InquiryStatusContacted}, nil)

		svc := NewInquiryService(inquiries, new(MockProfileRepo), zap.NewNop())

		got, err := svc.Update(context.Background(), inquiryID, admin,
			InquiryUpdateInput{Status: model.InquiryStatusContacted, IsRead: &read})
		require.NoError(t, err)
		assert.Equal(t, model.InquiryStatusContacted, got.Status)
		inquiries.AssertExpectations(t)
	})

	t.Run("delete unknown inquiry", func(t *testing.T) {
		inquiries := new(MockInquiryRepo)
		inquiries.On("GetByID", mock.Anything, inquiryID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInquiryService(inquiries, new(MockProfileRepo), zap.NewNop())

		err := svc.Delete(context.Background(), inquiryID, admin)
		assert.ErrorIs(t, err, ErrInquiryNotFound)
	})
}

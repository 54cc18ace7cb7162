package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmitInquiryInput struct {
	User      Identity
	ProfileID uuid.UUID
	UserName  string
	UserEmail string
	UserPhone string
	Message   string
}

type InquiryUpdateInput struct {
	Status     string
	AdminNotes string
	IsRead     *bool
}

type InquiryService interface {
	Submit(ctx context.Context, in SubmitInquiryInput) (*model.Inquiry, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Inquiry, error)
	ListAll(ctx context.Context, admin Identity) ([]*model.Inquiry, error)
	Update(ctx context.Context, id uuid.UUID, admin Identity, in InquiryUpdateInput) (*model.Inquiry, error)
	Delete(ctx context.Context, id uuid.UUID, admin Identity) error
}

type inquiryService struct {
	inquiries repo.InquiryRepo
	profiles  repo.ProfileRepo
	log       *zap.Logger
}

func NewInquiryService(inquiries repo.InquiryRepo, profiles repo.ProfileRepo, log *zap.Logger) InquiryService {
	return &inquiryService{inquiries: inquiries, profiles: profiles, log: log}
}

func (s *inquiryService) Submit(ctx context.Context, in SubmitInquiryInput) (*model.Inquiry, error) {
	switch {
	case in.UserName == "":
		return nil, &ValidationError{Field: "user_name", Reason: "required"}
	case in.UserEmail == "":
		return nil, &ValidationError{Field: "user_email", Reason: "required"}
	case in.UserPhone == "":
		return nil, &ValidationError{Field: "user_phone", Reason: "required"}
	case in.Message == "":
		return nil, &ValidationError{Field: "message", Reason: "required"}
	}

	profile, err := s.profiles.GetByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	inquiry := &model.Inquiry{
		ProfileID:   profile.ID,
		ProfileName: profile.Name,
		UserID:      in.User.UserID,
		UserName:    in.UserName,
		UserEmail:   in.UserEmail,
		UserPhone:   in.UserPhone,
		Message:     in.Message,
		Status:      model.InquiryStatusPending,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	s.log.Info("inquiry submitted",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("profile_id", profile.ID.String()))

	return inquiry, nil
}

func (s *inquiryService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Inquiry, error) {
	return s.inquiries.ListByUser(ctx, userID)
}

func (s *inquiryService) ListAll(ctx context.Context, admin Identity) ([]*model.Inquiry, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.inquiries.ListAll(ctx)
}

func (s *inquiryService) Update(ctx context.Context, id uuid.UUID, admin Identity, in InquiryUpdateInput) (*model.Inquiry, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if in.Status != "" {
		switch in.Status {
		case model.InquiryStatusPending, model.InquiryStatusContacted,
			model.InquiryStatusCompleted, model.InquiryStatusRejected:
			fields["status"] = in.Status
		default:
			return nil, &ValidationError{Field: "status", Reason: "unknown status"}
		}
	}
	if in.AdminNotes != "" {
		fields["admin_notes"] = in.AdminNotes
	}
	if in.IsRead != nil {
		fields["is_read"] = *in.IsRead
	}
	if len(fields) == 0 {
		return nil, &ValidationError{Field: "body", Reason: "nothing to update"}
	}

	inquiry, err := s.inquiries.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

func (s *inquiryService) Delete(ctx context.Context, id uuid.UUID, admin Identity) error {
	if !admin.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.inquiries.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInquiryNotFound
		}
		return err
	}
	return s.inquiries.Delete(ctx, id)
}

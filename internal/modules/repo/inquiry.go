package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"gorm.io/gorm"
)

type InquiryRepo interface {
	Create(ctx context.Context, i *model.Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Inquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Inquiry, error)
	ListAll(ctx context.Context) ([]*model.Inquiry, error)
}

type inquiryRepo struct{ db *gorm.DB }

func NewInquiryRepo(db *gorm.DB) InquiryRepo {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) Create(ctx context.Context, i *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *inquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	var i model.Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *inquiryRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Inquiry, error) {
	if err := r.db.WithContext(ctx).
		Model(&model.Inquiry{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *inquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Inquiry{}).Error
}

func (r *inquiryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Inquiry, error) {
	var inquiries []*model.Inquiry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepo) ListAll(ctx context.Context) ([]*model.Inquiry, error) {
	var inquiries []*model.Inquiry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}

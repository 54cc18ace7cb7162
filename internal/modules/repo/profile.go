package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"gorm.io/gorm"
)

// ProfileFilters narrows the public listing. Zero values mean "no filter".
type ProfileFilters struct {
	Gender    string
	Location  string
	MinAge    int
	MaxAge    int
	IsPremium *bool
}

type ProfileCounts struct {
	Total        int64 `json:"total"`
	Premium      int64 `json:"premium"`
	Verified     int64 `json:"verified"`
	AdminCreated int64 `json:"admin_created"`
}

type ProfileRepo interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Profile, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, f ProfileFilters) ([]*model.Profile, error)
	Search(ctx context.Context, term string) ([]*model.Profile, error)
	Featured(ctx context.Context, limit int) ([]*model.Profile, error)
	Recent(ctx context.Context, limit int) ([]*model.Profile, error)
	AddViews(ctx context.Context, id uuid.UUID, delta int64) error
	IncAccessRequests(ctx context.Context, id uuid.UUID) error
	IncApprovedAccess(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, profileID, userID uuid.UUID) error
	Unlike(ctx context.Context, profileID, userID uuid.UUID) error
	LikeCount(ctx context.Context, profileID uuid.UUID) (int64, error)
	Counts(ctx context.Context) (*ProfileCounts, error)
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, model.ProfileStatusDeleted).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).
		Where("created_by = ? AND status <> ?", ownerID, model.ProfileStatusDeleted).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Profile, error) {
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *profileRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *profileRepo) List(ctx context.Context, f ProfileFilters) ([]*model.Profile, error) {
	q := r.db.WithContext(ctx).Where("status <> ?", model.ProfileStatusDeleted)

	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.MinAge > 0 {
		q = q.Where("age >= ?", f.MinAge)
	}
	if f.MaxAge > 0 {
		q = q.Where("age <= ?", f.MaxAge)
	}
	if f.IsPremium != nil {
		q = q.Where("is_premium = ?", *f.IsPremium)
	}

	var profiles []*model.Profile
	err := q.Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Search(ctx context.Context, term string) ([]*model.Profile, error) {
	pattern := "%" + term + "%"
	var profiles []*model.Profile
	err := r.db.WithContext(ctx).
		Where("status <> ?", model.ProfileStatusDeleted).
		Where("name ILIKE ? OR location ILIKE ? OR profession ILIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Featured(ctx context.Context, limit int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := r.db.WithContext(ctx).
		Where("is_featured = TRUE AND is_verified = TRUE AND status = ?", model.ProfileStatusActive).
		Order("views DESC, created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Recent(ctx context.Context, limit int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := r.db.WithContext(ctx).
		Where("is_verified = TRUE AND status = ?", model.ProfileStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) AddViews(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"views":          gorm.Expr("views + ?", delta),
			"last_active_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *profileRepo) IncAccessRequests(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("access_requests_count", gorm.Expr("access_requests_count + 1")).Error
}

func (r *profileRepo) IncApprovedAccess(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("approved_access_count", gorm.Expr("approved_access_count + 1")).Error
}

func (r *profileRepo) Like(ctx context.Context, profileID, userID uuid.UUID) error {
	like := model.ProfileLike{ProfileID: profileID, UserID: userID}
	err := r.db.WithContext(ctx).Create(&like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already liked; liking twice is a no-op
		return nil
	}
	return err
}

func (r *profileRepo) Unlike(ctx context.Context, profileID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ? AND user_id = ?", profileID, userID).
		Delete(&model.ProfileLike{}).Error
}

func (r *profileRepo) LikeCount(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProfileLike{}).
		Where("profile_id = ?", profileID).
		Count(&n).Error
	return n, err
}

func (r *profileRepo) Counts(ctx context.Context) (*ProfileCounts, error) {
	counts := &ProfileCounts{}

	type probe struct {
		dst  *int64
		cond string
	}
	probes := []probe{
		{&counts.Total, ""},
		{&counts.Premium, "is_premium = TRUE"},
		{&counts.Verified, "is_verified = TRUE"},
		{&counts.AdminCreated, "created_by_admin = TRUE"},
	}
	for _, p := range probes {
		q := r.db.WithContext(ctx).Model(&model.Profile{}).
			Where("status <> ?", model.ProfileStatusDeleted)
		if p.cond != "" {
			q = q.Where(p.cond)
		}
		if err := q.Count(p.dst).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}

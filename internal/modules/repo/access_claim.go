package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ClaimStatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// AccessClaimRepo persists the access-request ledger. Rows are append-only
// except for the single pending->terminal transition applied by Decide.
type AccessClaimRepo interface {
	Create(ctx context.Context, c *model.AccessClaim) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccessClaim, error)
	ExistsUTR(ctx context.Context, utr string) (bool, error)
	// FindActiveForPair returns the pending or approved claim for the
	// pair, or nil when the viewer has no live claim on the profile.
	FindActiveForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error)
	GetApprovedForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error)
	HasApproved(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error)
	// Decide flips a pending claim to a terminal status. Returns the
	// number of rows updated: zero means the claim was missing or had
	// already been decided.
	Decide(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID, notes string, at time.Time) (int64, error)
	ListByViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error)
	ListAll(ctx context.Context) ([]*model.AccessClaim, error)
	CountsByStatus(ctx context.Context) (*ClaimStatusCounts, error)
}

type accessClaimRepo struct{ db *gorm.DB }

func NewAccessClaimRepo(db *gorm.DB) AccessClaimRepo {
	return &accessClaimRepo{db: db}
}

func (r *accessClaimRepo) Create(ctx context.Context, c *model.AccessClaim) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *accessClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.AccessClaim, error) {
	var c model.AccessClaim
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accessClaimRepo) ExistsUTR(ctx context.Context, utr string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessClaim{}).
		Where("utr_number = ?", utr).
		Count(&n).Error
	return n > 0, err
}

func (r *accessClaimRepo) FindActiveForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error) {
	var c model.AccessClaim
	err := r.db.WithContext(ctx).
		Where("viewer_id = ? AND profile_id = ? AND status IN ?",
			viewerID, profileID, []string{model.ClaimStatusPending, model.ClaimStatusApproved}).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accessClaimRepo) GetApprovedForPair(ctx context.Context, viewerID, profileID uuid.UUID) (*model.AccessClaim, error) {
	var c model.AccessClaim
	err := r.db.WithContext(ctx).
		Where("viewer_id = ? AND profile_id = ? AND status = ?",
			viewerID, profileID, model.ClaimStatusApproved).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accessClaimRepo) HasApproved(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessClaim{}).
		Where("viewer_id = ? AND profile_id = ? AND status = ?",
			viewerID, profileID, model.ClaimStatusApproved).
		Count(&n).Error
	return n > 0, err
}

func (r *accessClaimRepo) Decide(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID, notes string, at time.Time) (int64, error) {
	// The status guard makes the transition one-shot: a second decision
	// matches zero rows and can never overwrite decided_at/decided_by.
	res := r.db.WithContext(ctx).
		Model(&model.AccessClaim{}).
		Where("id = ? AND status = ?", id, model.ClaimStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"decided_at":  at,
			"decided_by":  decidedBy,
			"admin_notes": notes,
		})
	return res.RowsAffected, res.Error
}

func (r *accessClaimRepo) ListByViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error) {
	var claims []*model.AccessClaim
	err := r.db.WithContext(ctx).
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC").
		Find(&claims).Error
	return claims, err
}

func (r *accessClaimRepo) ListAll(ctx context.Context) ([]*model.AccessClaim, error) {
	var claims []*model.AccessClaim
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&claims).Error
	return claims, err
}

func (r *accessClaimRepo) CountsByStatus(ctx context.Context) (*ClaimStatusCounts, error) {
	counts := &ClaimStatusCounts{}
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, status string) func() error {
		return func() error {
			q := r.db.WithContext(gctx).Model(&model.AccessClaim{})
			if status != "" {
				q = q.Where("status = ?", status)
			}
			return q.Count(dst).Error
		}
	}

	g.Go(count(&counts.Total, ""))
	g.Go(count(&counts.Pending, model.ClaimStatusPending))
	g.Go(count(&counts.Approved, model.ClaimStatusApproved))
	g.Go(count(&counts.Rejected, model.ClaimStatusRejected))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

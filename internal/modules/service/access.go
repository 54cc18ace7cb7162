package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// utrPattern is applied after normalization (trim + uppercase). Indian UTR
// references are at least 12 alphanumeric characters.
var utrPattern = regexp.MustCompile(`^[A-Z0-9]{12,}$`)

// NormalizeUTR canonicalizes a transaction reference. All uniqueness checks
// and storage use the normalized form.
func NormalizeUTR(raw string) (string, error) {
	utr := strings.ToUpper(strings.TrimSpace(raw))
	if !utrPattern.MatchString(utr) {
		return "", &ValidationError{
			Field:  "utr_number",
			Reason: "must be at least 12 characters, letters and digits only",
		}
	}
	return utr, nil
}

type SubmitClaimInput struct {
	Viewer      Identity
	ProfileID   uuid.UUID
	ViewerName  string
	ViewerEmail string
	ViewerPhone string
	Amount      float64
	UTRNumber   string
	Channel     string
	ProofKey    string
}

// AccessService owns the access-request ledger and the visibility gate.
type AccessService interface {
	Submit(ctx context.Context, in SubmitClaimInput) (*model.AccessClaim, error)
	Decide(ctx context.Context, claimID uuid.UUID, approve bool, decider Identity, notes string) (*model.AccessClaim, error)
	HasApprovedAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error)
	CheckAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, *model.AccessClaim, error)
	ResolveAccessLevel(ctx context.Context, viewer *Identity, p *model.Profile) (model.AccessLevel, error)
	ListForViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error)
	ListAll(ctx context.Context) ([]*model.AccessClaim, error)
	CountsByStatus(ctx context.Context) (*repo.ClaimStatusCounts, error)
}

type accessService struct {
	claims   repo.AccessClaimRepo
	profiles repo.ProfileRepo
	log      *zap.Logger
}

func NewAccessService(claims repo.AccessClaimRepo, profiles repo.ProfileRepo, log *zap.Logger) AccessService {
	return &accessService{claims: claims, profiles: profiles, log: log}
}

func (s *accessService) Submit(ctx context.Context, in SubmitClaimInput) (*model.AccessClaim, error) {
	switch {
	case in.ViewerName == "":
		return nil, &ValidationError{Field: "user_name", Reason: "required"}
	case in.ViewerEmail == "":
		return nil, &ValidationError{Field: "user_email", Reason: "required"}
	case in.ViewerPhone == "":
		return nil, &ValidationError{Field: "user_phone", Reason: "required"}
	case in.Amount <= 0:
		return nil, &ValidationError{Field: "amount_paid", Reason: "must be positive"}
	}
	if in.Channel != model.PaymentChannelUPI && in.Channel != model.PaymentChannelQR {
		return nil, &ValidationError{Field: "payment_method", Reason: "must be UPI or QR Code"}
	}

	utr, err := NormalizeUTR(in.UTRNumber)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	// Pre-checks pick the precise error message; the unique indexes are
	// what actually guarantee the invariants under concurrency.
	exists, err := s.claims.ExistsUTR(ctx, utr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUTR
	}

	if active, err := s.claims.FindActiveForPair(ctx, in.Viewer.UserID, in.ProfileID); err != nil {
		return nil, err
	} else if active != nil {
		if active.Status == model.ClaimStatusApproved {
			return nil, ErrClaimApproved
		}
		return nil, ErrClaimPending
	}

	claim := &model.AccessClaim{
		ProfileID:      profile.ID,
		ProfileName:    profile.Name,
		ViewerID:       in.Viewer.UserID,
		ViewerName:     in.ViewerName,
		ViewerEmail:    in.ViewerEmail,
		ViewerPhone:    in.ViewerPhone,
		AmountClaimed:  in.Amount,
		UTRNumber:      utr,
		PaymentChannel: in.Channel,
		ProofKey:       in.ProofKey,
		Status:         model.ClaimStatusPending,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(ctx, utr, in.Viewer.UserID, in.ProfileID)
		}
		return nil, err
	}

	// Engagement counter only; claim creation has already succeeded
	if err := s.profiles.IncAccessRequests(ctx, profile.ID); err != nil {
		s.log.Warn("failed to bump access request counter",
			zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}

	return claim, nil
}

// classifyDuplicate maps a unique violation raised by the insert onto the
// taxonomy: it may come from the global UTR index or from the partial
// (viewer, profile) index that backs the one-live-claim rule.
func (s *accessService) classifyDuplicate(ctx context.Context, utr string, viewerID, profileID uuid.UUID) error {
	if exists, err := s.claims.ExistsUTR(ctx, utr); err == nil && exists {
		return ErrDuplicateUTR
	}
	if active, err := s.claims.FindActiveForPair(ctx, viewerID, profileID); err == nil && active != nil {
		if active.Status == model.ClaimStatusApproved {
			return ErrClaimApproved
		}
		return ErrClaimPending
	}
	return ErrDuplicateUTR
}

func (s *accessService) Decide(ctx context.Context, claimID uuid.UUID, approve bool, decider Identity, notes string) (*model.AccessClaim, error) {
	if !decider.IsAdmin() {
		return nil, ErrForbidden
	}

	status := model.ClaimStatusRejected
	if approve {
		status = model.ClaimStatusApproved
	}

	rows, err := s.claims.Decide(ctx, claimID, status, decider.UserID, notes, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Either the claim does not exist or it is already terminal;
		// in both cases the prior decision data stays untouched.
		claim, err := s.claims.GetByID(ctx, claimID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClaimNotFound
			}
			return nil, err
		}
		if claim.Decided() {
			return nil, ErrClaimDecided
		}
		return nil, ErrClaimNotFound
	}

	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if approve {
		if err := s.profiles.IncApprovedAccess(ctx, claim.ProfileID); err != nil {
			s.log.Warn("failed to bump approved access counter",
				zap.String("profile_id", claim.ProfileID.String()), zap.Error(err))
		}
	}

	s.log.Info("access request decided",
		zap.String("claim_id", claimID.String()),
		zap.String("status", status),
		zap.String("decided_by", decider.UserID.String()))

	return claim, nil
}

func (s *accessService) HasApprovedAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, error) {
	return s.claims.HasApproved(ctx, viewerID, profileID)
}

func (s *accessService) CheckAccess(ctx context.Context, viewerID, profileID uuid.UUID) (bool, *model.AccessClaim, error) {
	claim, err := s.claims.GetApprovedForPair(ctx, viewerID, profileID)
	if err != nil {
		return false, nil, err
	}
	return claim != nil, claim, nil
}

// ResolveAccessLevel is the gate decision. It is evaluated fresh on every
// read; nothing is cached because access can be granted between two reads
// of the same profile.
func (s *accessService) ResolveAccessLevel(ctx context.Context, viewer *Identity, p *model.Profile) (model.AccessLevel, error) {
	if viewer == nil {
		return model.AccessLevelNone, nil
	}
	if viewer.UserID == p.CreatedBy {
		return model.AccessLevelOwner, nil
	}
	if viewer.IsAdmin() {
		return model.AccessLevelAdmin, nil
	}
	ok, err := s.claims.HasApproved(ctx, viewer.UserID, p.ID)
	if err != nil {
		return model.AccessLevelNone, err
	}
	if ok {
		return model.AccessLevelPaid, nil
	}
	return model.AccessLevelNone, nil
}

func (s *accessService) ListForViewer(ctx context.Context, viewerID uuid.UUID) ([]*model.AccessClaim, error) {
	return s.claims.ListByViewer(ctx, viewerID)
}

func (s *accessService) ListAll(ctx context.Context) ([]*model.AccessClaim, error) {
	return s.claims.ListAll(ctx)
}

func (s *accessService) CountsByStatus(ctx context.Context) (*repo.ClaimStatusCounts, error) {
	return s.claims.CountsByStatus(ctx)
}

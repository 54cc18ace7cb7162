package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// viewDedupeTTL is how long a (profile, viewer) pair counts as a single
// view.
const viewDedupeTTL = 24 * time.Hour

// ProfileInput carries profile fields from the HTTP layer. Zero values are
// treated as "not provided" and left untouched on update, mirroring how
// the multipart form omits empty inputs.
type ProfileInput struct {
	Name       string
	Gender     string
	Age        int
	DOB        *time.Time
	Location   string
	Profession string
	Education  string
	Height     string
	Bio        string
	ImageKey   string

	PhoneNumber    string
	WhatsappNumber string
	Email          string

	Income        string
	Caste         string
	Gotra         string
	MaritalStatus string
	MotherTongue  string
	Religion      string
	BodyType      string
	Complexion    string
	BloodGroup    string
	Diet          string
	Drinking      string
	Smoking       string

	FamilyType       string
	FatherName       string
	FatherOccupation string
	MotherName       string
	MotherOccupation string
	Siblings         string
	FamilyIncome     string
	FamilyLocation   string

	BirthPlace string
	BirthTime  string
	Rashi      string
	Nakshatra  string
	Manglik    string

	PartnerAgeMin        *int
	PartnerAgeMax        *int
	PartnerHeightMin     string
	PartnerHeightMax     string
	PartnerMaritalStatus string
	PartnerEducation     string
	PartnerProfession    string
	PartnerLocation      string
	PartnerIncome        string

	IsPremium  *bool
	IsFeatured *bool
}

type ProfileService interface {
	GetOwn(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error)
	UpsertOwn(ctx context.Context, ownerID uuid.UUID, in ProfileInput) (*model.Profile, error)
	CreateByAdmin(ctx context.Context, admin Identity, in ProfileInput) (*model.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, id uuid.UUID, actor Identity, in ProfileInput) (*model.Profile, error)
	Delete(ctx context.Context, id uuid.UUID, actor Identity) error
	List(ctx context.Context, f repo.ProfileFilters) ([]*model.Profile, error)
	Search(ctx context.Context, term string) ([]*model.Profile, error)
	Featured(ctx context.Context, limit int) ([]*model.Profile, error)
	Recent(ctx context.Context, limit int) ([]*model.Profile, error)
	RecordView(ctx context.Context, id uuid.UUID, viewerKey string) error
	Like(ctx context.Context, profileID, userID uuid.UUID) error
	Unlike(ctx context.Context, profileID, userID uuid.UUID) error
	Counts(ctx context.Context) (*repo.ProfileCounts, error)
}

type profileService struct {
	profiles repo.ProfileRepo
	rdb      *redis.Client
	log      *zap.Logger
}

func NewProfileService(profiles repo.ProfileRepo, rdb *redis.Client, log *zap.Logger) ProfileService {
	return &profileService{profiles: profiles, rdb: rdb, log: log}
}

func (s *profileService) GetOwn(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	p, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) UpsertOwn(ctx context.Context, ownerID uuid.UUID, in ProfileInput) (*model.Profile, error) {
	existing, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		return s.profiles.Update(ctx, existing.ID, updateFields(in))
	}

	if err := requireCreateFields(in); err != nil {
		return nil, err
	}
	p := newProfile(in, ownerID)
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) CreateByAdmin(ctx context.Context, admin Identity, in ProfileInput) (*model.Profile, error) {
	if !admin.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := requireCreateFields(in); err != nil {
		return nil, err
	}
	p := newProfile(in, admin.UserID)
	p.CreatedByAdmin = true
	p.IsVerified = true
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, id uuid.UUID, actor Identity, in ProfileInput) (*model.Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.profiles.Update(ctx, id, updateFields(in))
}

func (s *profileService) Delete(ctx context.Context, id uuid.UUID, actor Identity) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatedBy != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}
	// Soft delete: the row stays for the claim/inquiry audit trail but
	// drops out of every listing and lookup
	return s.profiles.SetStatus(ctx, id, model.ProfileStatusDeleted)
}

func (s *profileService) List(ctx context.Context, f repo.ProfileFilters) ([]*model.Profile, error) {
	return s.profiles.List(ctx, f)
}

func (s *profileService) Search(ctx context.Context, term string) ([]*model.Profile, error) {
	if term == "" {
		return nil, &ValidationError{Field: "q", Reason: "required"}
	}
	return s.profiles.Search(ctx, term)
}

func (s *profileService) Featured(ctx context.Context, limit int) ([]*model.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.profiles.Featured(ctx, limit)
}

func (s *profileService) Recent(ctx context.Context, limit int) ([]*model.Profile, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.profiles.Recent(ctx, limit)
}

// RecordView bumps the view counter, at most once per viewer per profile
// per day. The dedupe window lives in Redis; the counter itself is a plain
// column update so the read path stays side-effect free.
func (s *profileService) RecordView(ctx context.Context, id uuid.UUID, viewerKey string) error {
	if viewerKey != "" {
		key := fmt.Sprintf("profile:view:%s:%s", id, viewerKey)
		fresh, err := s.rdb.SetNX(ctx, key, 1, viewDedupeTTL).Result()
		if err != nil {
			// Redis being down degrades to counting every view
			s.log.Warn("view dedupe unavailable", zap.Error(err))
		} else if !fresh {
			return nil
		}
	}
	return s.profiles.AddViews(ctx, id, 1)
}

func (s *profileService) Like(ctx context.Context, profileID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, profileID); err != nil {
		return err
	}
	return s.profiles.Like(ctx, profileID, userID)
}

func (s *profileService) Unlike(ctx context.Context, profileID, userID uuid.UUID) error {
	return s.profiles.Unlike(ctx, profileID, userID)
}

func (s *profileService) Counts(ctx context.Context) (*repo.ProfileCounts, error) {
	return s.profiles.Counts(ctx)
}

func requireCreateFields(in ProfileInput) error {
	switch {
	case in.Name == "":
		return &ValidationError{Field: "name", Reason: "required"}
	case in.Gender == "":
		return &ValidationError{Field: "gender", Reason: "required"}
	case in.Age < 18 || in.Age > 100:
		return &ValidationError{Field: "age", Reason: "must be between 18 and 100"}
	case in.Location == "":
		return &ValidationError{Field: "location", Reason: "required"}
	}
	if in.PartnerAgeMin != nil && in.PartnerAgeMax != nil && *in.PartnerAgeMin > *in.PartnerAgeMax {
		return &ValidationError{Field: "partner_age_min", Reason: "cannot exceed partner_age_max"}
	}
	return nil
}

func newProfile(in ProfileInput, owner uuid.UUID) *model.Profile {
	p := &model.Profile{
		Name:       in.Name,
		Gender:     in.Gender,
		Age:        in.Age,
		Location:   in.Location,
		Profession: in.Profession,
		Education:  in.Education,
		Height:     in.Height,
		Bio:        in.Bio,
		ImageKey:   in.ImageKey,

		PhoneNumber:    in.PhoneNumber,
		WhatsappNumber: in.WhatsappNumber,
		Email:          in.Email,

		Income:        in.Income,
		Caste:         in.Caste,
		Gotra:         in.Gotra,
		MaritalStatus: in.MaritalStatus,
		MotherTongue:  in.MotherTongue,
		Religion:      in.Religion,
		BodyType:      in.BodyType,
		Complexion:    in.Complexion,
		BloodGroup:    in.BloodGroup,
		Diet:          in.Diet,
		Drinking:      in.Drinking,
		Smoking:       in.Smoking,

		FamilyType:       in.FamilyType,
		FatherName:       in.FatherName,
		FatherOccupation: in.FatherOccupation,
		MotherName:       in.MotherName,
		MotherOccupation: in.MotherOccupation,
		Siblings:         in.Siblings,
		FamilyIncome:     in.FamilyIncome,
		FamilyLocation:   in.FamilyLocation,

		BirthPlace: in.BirthPlace,
		BirthTime:  in.BirthTime,
		Rashi:      in.Rashi,
		Nakshatra:  in.Nakshatra,
		Manglik:    in.Manglik,

		PartnerAgeMin:        in.PartnerAgeMin,
		PartnerAgeMax:        in.PartnerAgeMax,
		PartnerHeightMin:     in.PartnerHeightMin,
		PartnerHeightMax:     in.PartnerHeightMax,
		PartnerMaritalStatus: in.PartnerMaritalStatus,
		PartnerEducation:     in.PartnerEducation,
		PartnerProfession:    in.PartnerProfession,
		PartnerLocation:      in.PartnerLocation,
		PartnerIncome:        in.PartnerIncome,

		CreatedBy: owner,
		Status:    model.ProfileStatusActive,
	}
	if in.DOB != nil {
		d := datatypes.Date(*in.DOB)
		p.DOB = &d
	}
	if in.IsPremium != nil {
		p.IsPremium = *in.IsPremium
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	return p
}

// updateFields maps provided inputs onto column updates; zero values stay
// untouched.
func updateFields(in ProfileInput) map[string]interface{} {
	fields := map[string]interface{}{}

	setStr := func(col, v string) {
		if v != "" {
			fields[col] = v
		}
	}

	setStr("name", in.Name)
	setStr("gender", in.Gender)
	if in.Age > 0 {
		fields["age"] = in.Age
	}
	if in.DOB != nil {
		fields["dob"] = datatypes.Date(*in.DOB)
	}
	setStr("location", in.Location)
	setStr("profession", in.Profession)
	setStr("education", in.Education)
	setStr("height", in.Height)
	setStr("bio", in.Bio)
	setStr("image_key", in.ImageKey)

	setStr("phone_number", in.PhoneNumber)
	setStr("whatsapp_number", in.WhatsappNumber)
	setStr("email", in.Email)

	setStr("income", in.Income)
	setStr("caste", in.Caste)
	setStr("gotra", in.Gotra)
	setStr("marital_status", in.MaritalStatus)
	setStr("mother_tongue", in.MotherTongue)
	setStr("religion", in.Religion)
	setStr("body_type", in.BodyType)
	setStr("complexion", in.Complexion)
	setStr("blood_group", in.BloodGroup)
	setStr("diet", in.Diet)
	setStr("drinking", in.Drinking)
	setStr("smoking", in.Smoking)

	setStr("family_type", in.FamilyType)
	setStr("father_name", in.FatherName)
	setStr("father_occupation", in.FatherOccupation)
	setStr("mother_name", in.MotherName)
	setStr("mother_occupation", in.MotherOccupation)
	setStr("siblings", in.Siblings)
	setStr("family_income", in.FamilyIncome)
	setStr("family_location", in.FamilyLocation)

	setStr("birth_place", in.BirthPlace)
	setStr("birth_time", in.BirthTime)
	setStr("rashi", in.Rashi)
	setStr("nakshatra", in.Nakshatra)
	setStr("manglik", in.Manglik)

	if in.PartnerAgeMin != nil {
		fields["partner_age_min"] = *in.PartnerAgeMin
	}
	if in.PartnerAgeMax != nil {
		fields["partner_age_max"] = *in.PartnerAgeMax
	}
	setStr("partner_height_min", in.PartnerHeightMin)
	setStr("partner_height_max", in.PartnerHeightMax)
	setStr("partner_marital_status", in.PartnerMaritalStatus)
	setStr("partner_education", in.PartnerEducation)
	setStr("partner_profession", in.PartnerProfession)
	setStr("partner_location", in.PartnerLocation)
	setStr("partner_income", in.PartnerIncome)

	if in.IsPremium != nil {
		fields["is_premium"] = *in.IsPremium
	}
	if in.IsFeatured != nil {
		fields["is_featured"] = *in.IsFeatured
	}

	fields["last_active_at"] = time.Now()
	return fields
}

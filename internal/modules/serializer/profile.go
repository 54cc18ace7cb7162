package serializer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sangamhq/sangam/internal/modules/model"
)

// RestrictedProfile is the profile as anyone may see it. Premium fields do
// not exist on this struct at all, so a serialization bug cannot leak
// them; unlocking is done by building the richer view, never by blanking
// fields on the full one.
type RestrictedProfile struct {
	ID uuid.UUID `json:"id"`

	Name       string          `json:"name"`
	Gender     string          `json:"gender"`
	Age        int             `json:"age"`
	DOB        *datatypes.Date `json:"dob,omitempty"`
	Location   string          `json:"location"`
	Profession string          `json:"profession,omitempty"`
	Education  string          `json:"education,omitempty"`
	Height     string          `json:"height,omitempty"`
	Bio        string          `json:"bio,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`

	IsPremium  bool `json:"is_premium"`
	IsVerified bool `json:"is_verified"`
	IsFeatured bool `json:"is_featured"`

	Views                int64  `json:"views"`
	Status               string `json:"status"`
	CompletionPercentage int    `json:"completion_percentage"`

	AccessLevel   model.AccessLevel `json:"access_level"`
	HasFullAccess bool              `json:"has_full_access"`

	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// FullProfile adds the premium field groups on top of the restricted set.
// Only owner, admin, and approved-claim viewers ever receive it.
type FullProfile struct {
	RestrictedProfile

	PhoneNumber    string `json:"phone_number,omitempty"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
	Email          string `json:"email,omitempty"`

	Income        string `json:"income,omitempty"`
	Caste         string `json:"caste,omitempty"`
	Gotra         string `json:"gotra,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	MotherTongue  string `json:"mother_tongue,omitempty"`
	Religion      string `json:"religion,omitempty"`
	BodyType      string `json:"body_type,omitempty"`
	Complexion    string `json:"complexion,omitempty"`
	BloodGroup    string `json:"blood_group,omitempty"`
	Diet          string `json:"diet,omitempty"`
	Drinking      string `json:"drinking,omitempty"`
	Smoking       string `json:"smoking,omitempty"`

	FamilyType       string `json:"family_type,omitempty"`
	FatherName       string `json:"father_name,omitempty"`
	FatherOccupation string `json:"father_occupation,omitempty"`
	MotherName       string `json:"mother_name,omitempty"`
	MotherOccupation string `json:"mother_occupation,omitempty"`
	Siblings         string `json:"siblings,omitempty"`
	FamilyIncome     string `json:"family_income,omitempty"`
	FamilyLocation   string `json:"family_location,omitempty"`

	BirthPlace string `json:"birth_place,omitempty"`
	BirthTime  string `json:"birth_time,omitempty"`
	Rashi      string `json:"rashi,omitempty"`
	Nakshatra  string `json:"nakshatra,omitempty"`
	Manglik    string `json:"manglik,omitempty"`

	PartnerAgeMin        *int   `json:"partner_age_min,omitempty"`
	PartnerAgeMax        *int   `json:"partner_age_max,omitempty"`
	PartnerHeightMin     string `json:"partner_height_min,omitempty"`
	PartnerHeightMax     string `json:"partner_height_max,omitempty"`
	PartnerMaritalStatus string `json:"partner_marital_status,omitempty"`
	PartnerEducation     string `json:"partner_education,omitempty"`
	PartnerProfession    string `json:"partner_profession,omitempty"`
	PartnerLocation      string `json:"partner_location,omitempty"`
	PartnerIncome        string `json:"partner_income,omitempty"`

	CreatedByAdmin      bool  `json:"created_by_admin"`
	AccessRequestsCount int64 `json:"access_requests_count"`
	ApprovedAccessCount int64 `json:"approved_access_count"`
}

func buildRestrictedProfile(p *model.Profile, level model.AccessLevel, imageURL string) RestrictedProfile {
	return RestrictedProfile{
		ID:         p.ID,
		Name:       p.Name,
		Gender:     p.Gender,
		Age:        p.Age,
		DOB:        p.DOB,
		Location:   p.Location,
		Profession: p.Profession,
		Education:  p.Education,
		Height:     p.Height,
		Bio:        p.Bio,
		ImageURL:   imageURL,

		IsPremium:  p.IsPremium,
		IsVerified: p.IsVerified,
		IsFeatured: p.IsFeatured,

		Views:                p.Views,
		Status:               p.Status,
		CompletionPercentage: p.CompletionPercentage(),

		AccessLevel:   level,
		HasFullAccess: level.Full(),

		CreatedAt:    p.CreatedAt,
		LastActiveAt: p.LastActiveAt,
	}
}

func buildFullProfile(p *model.Profile, level model.AccessLevel, imageURL string) FullProfile {
	return FullProfile{
		RestrictedProfile: buildRestrictedProfile(p, level, imageURL),

		PhoneNumber:    p.PhoneNumber,
		WhatsappNumber: p.WhatsappNumber,
		Email:          p.Email,

		Income:        p.Income,
		Caste:         p.Caste,
		Gotra:         p.Gotra,
		MaritalStatus: p.MaritalStatus,
		MotherTongue:  p.MotherTongue,
		Religion:      p.Religion,
		BodyType:      p.BodyType,
		Complexion:    p.Complexion,
		BloodGroup:    p.BloodGroup,
		Diet:          p.Diet,
		Drinking:      p.Drinking,
		Smoking:       p.Smoking,

		FamilyType:       p.FamilyType,
		FatherName:       p.FatherName,
		FatherOccupation: p.FatherOccupation,
		MotherName:       p.MotherName,
		MotherOccupation: p.MotherOccupation,
		Siblings:         p.Siblings,
		FamilyIncome:     p.FamilyIncome,
		FamilyLocation:   p.FamilyLocation,

		BirthPlace: p.BirthPlace,
		BirthTime:  p.BirthTime,
		Rashi:      p.Rashi,
		Nakshatra:  p.Nakshatra,
		Manglik:    p.Manglik,

		PartnerAgeMin:        p.PartnerAgeMin,
		PartnerAgeMax:        p.PartnerAgeMax,
		PartnerHeightMin:     p.PartnerHeightMin,
		PartnerHeightMax:     p.PartnerHeightMax,
		PartnerMaritalStatus: p.PartnerMaritalStatus,
		PartnerEducation:     p.PartnerEducation,
		PartnerProfession:    p.PartnerProfession,
		PartnerLocation:      p.PartnerLocation,
		PartnerIncome:        p.PartnerIncome,

		CreatedByAdmin:      p.CreatedByAdmin,
		AccessRequestsCount: p.AccessRequestsCount,
		ApprovedAccessCount: p.ApprovedAccessCount,
	}
}

// BuildProfile picks the view a given access level is entitled to. The
// restricted branch is the default; only a recognized full-access level
// upgrades it.
func BuildProfile(p *model.Profile, level model.AccessLevel, imageURL string) interface{} {
	switch level {
	case model.AccessLevelOwner, model.AccessLevelAdmin, model.AccessLevelPaid:
		return buildFullProfile(p, level, imageURL)
	default:
		return buildRestrictedProfile(p, level, imageURL)
	}
}

// BuildProfileList always serializes the restricted view. Listings never
// carry premium fields regardless of who asks.
func BuildProfileList(profiles []*model.Profile, urlFor func(key string) string) []RestrictedProfile {
	out := make([]RestrictedProfile, 0, len(profiles))
	for _, p := range profiles {
		url := ""
		if urlFor != nil {
			url = urlFor(p.ImageKey)
		}
		out = append(out, buildRestrictedProfile(p, model.AccessLevelNone, url))
	}
	return out
}

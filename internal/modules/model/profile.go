package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProfileStatusActive   = "Active"
	ProfileStatusInactive = "Inactive"
	ProfileStatusMatched  = "Matched"
	ProfileStatusDeleted  = "Deleted"
)

// Profile holds both the public listing fields and the premium fields that
// are only released through the access gate. The struct itself never
// decides visibility; serializer.ProfileView does, via an allow-list.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Basic information, always visible
	Name       string          `gorm:"type:text;not null" json:"name"`
	Gender     string          `gorm:"type:text;not null;index" json:"gender"`
	Age        int             `gorm:"not null;index" json:"age"`
	DOB        *datatypes.Date `gorm:"column:dob" json:"dob,omitempty"`
	Location   string          `gorm:"type:text;not null;index" json:"location"`
	Profession string          `gorm:"type:text" json:"profession,omitempty"`
	Education  string          `gorm:"type:text" json:"education,omitempty"`
	Height     string          `gorm:"type:text" json:"height,omitempty"`
	Bio        string          `gorm:"type:text" json:"bio,omitempty"`
	ImageKey   string          `gorm:"type:text" json:"image_key,omitempty"`

	// Contact information, premium
	PhoneNumber    string `gorm:"type:text" json:"phone_number,omitempty"`
	WhatsappNumber string `gorm:"type:text" json:"whatsapp_number,omitempty"`
	Email          string `gorm:"type:text" json:"email,omitempty"`

	// Personal details, premium
	Income        string `gorm:"type:text" json:"income,omitempty"`
	Caste         string `gorm:"type:text" json:"caste,omitempty"`
	Gotra         string `gorm:"type:text" json:"gotra,omitempty"`
	MaritalStatus string `gorm:"type:text;default:Never Married" json:"marital_status,omitempty"`
	MotherTongue  string `gorm:"type:text" json:"mother_tongue,omitempty"`
	Religion      string `gorm:"type:text" json:"religion,omitempty"`
	BodyType      string `gorm:"type:text" json:"body_type,omitempty"`
	Complexion    string `gorm:"type:text" json:"complexion,omitempty"`
	BloodGroup    string `gorm:"type:text" json:"blood_group,omitempty"`
	Diet          string `gorm:"type:text" json:"diet,omitempty"`
	Drinking      string `gorm:"type:text" json:"drinking,omitempty"`
	Smoking       string `gorm:"type:text" json:"smoking,omitempty"`

	// Family details, premium
	FamilyType       string `gorm:"type:text" json:"family_type,omitempty"`
	FatherName       string `gorm:"type:text" json:"father_name,omitempty"`
	FatherOccupation string `gorm:"type:text" json:"father_occupation,omitempty"`
	MotherName       string `gorm:"type:text" json:"mother_name,omitempty"`
	MotherOccupation string `gorm:"type:text" json:"mother_occupation,omitempty"`
	Siblings         string `gorm:"type:text" json:"siblings,omitempty"`
	FamilyIncome     string `gorm:"type:text" json:"family_income,omitempty"`
	FamilyLocation   string `gorm:"type:text" json:"family_location,omitempty"`

	// Horoscope details, premium
	BirthPlace string `gorm:"type:text" json:"birth_place,omitempty"`
	BirthTime  string `gorm:"type:text" json:"birth_time,omitempty"`
	Rashi      string `gorm:"type:text" json:"rashi,omitempty"`
	Nakshatra  string `gorm:"type:text" json:"nakshatra,omitempty"`
	Manglik    string `gorm:"type:text" json:"manglik,omitempty"`

	// Partner preferences, premium
	PartnerAgeMin        *int   `json:"partner_age_min,omitempty"`
	PartnerAgeMax        *int   `json:"partner_age_max,omitempty"`
	PartnerHeightMin     string `gorm:"type:text" json:"partner_height_min,omitempty"`
	PartnerHeightMax     string `gorm:"type:text" json:"partner_height_max,omitempty"`
	PartnerMaritalStatus string `gorm:"type:text" json:"partner_marital_status,omitempty"`
	PartnerEducation     string `gorm:"type:text" json:"partner_education,omitempty"`
	PartnerProfession    string `gorm:"type:text" json:"partner_profession,omitempty"`
	PartnerLocation      string `gorm:"type:text" json:"partner_location,omitempty"`
	PartnerIncome        string `gorm:"type:text" json:"partner_income,omitempty"`

	// Listing settings
	IsPremium      bool      `gorm:"not null;default:false;index" json:"is_premium"`
	IsVerified     bool      `gorm:"not null;default:false;index" json:"is_verified"`
	IsFeatured     bool      `gorm:"not null;default:false;index" json:"is_featured"`
	CreatedByAdmin bool      `gorm:"not null;default:false" json:"created_by_admin"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`

	// Engagement
	Views               int64 `gorm:"not null;default:0" json:"views"`
	AccessRequestsCount int64 `gorm:"not null;default:0" json:"access_requests_count"`
	ApprovedAccessCount int64 `gorm:"not null;default:0" json:"approved_access_count"`

	Status       string    `gorm:"type:text;not null;default:Active;index" json:"status"`
	LastActiveAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_active_at"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Owner *User `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	Likes []ProfileLike `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Profile) TableName() string { return "profiles" }

// CompletionPercentage reports how much of a fixed 17-field set is filled,
// rounded to the nearest whole percent. The list matches what the listing
// UI nudges users to complete.
func (p *Profile) CompletionPercentage() int {
	fields := []string{
		p.Name, p.Gender, p.Location, p.Profession, p.Education,
		p.Height, p.Bio, p.ImageKey, p.PhoneNumber, p.Income,
		p.Caste, p.MaritalStatus, p.Religion, p.FamilyType,
		p.FatherOccupation, p.MotherOccupation,
	}
	total := len(fields) + 1 // age is tracked too
	filled := 0
	if p.Age > 0 {
		filled++
	}
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return int(float64(filled)/float64(total)*100 + 0.5)
}

type ProfileLike struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey" json:"profile_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProfileLike) TableName() string { return "profile_likes" }

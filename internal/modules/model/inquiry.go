package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	InquiryStatusPending   = "pending"
	InquiryStatusContacted = "contacted"
	InquiryStatusCompleted = "completed"
	InquiryStatusRejected  = "rejected"
)

type Inquiry struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	ProfileName string    `gorm:"type:text;not null" json:"profile_name"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName  string    `gorm:"type:text;not null" json:"user_name"`
	UserEmail string    `gorm:"type:text;not null" json:"user_email"`
	UserPhone string    `gorm:"type:text;not null" json:"user_phone"`

	Message string `gorm:"type:text;not null" json:"message"`

	Status     string `gorm:"type:text;not null;default:pending;index" json:"status"`
	AdminNotes string `gorm:"type:text" json:"admin_notes,omitempty"`
	IsRead     bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Inquiry) TableName() string { return "inquiries" }

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName     string    `gorm:"type:text;not null" json:"full_name"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`

	Age    *int   `gorm:"type:int" json:"age,omitempty"`
	Gender string `gorm:"type:text" json:"gender,omitempty"`
	Phone  string `gorm:"type:text" json:"phone,omitempty"`

	Role     string `gorm:"type:text;not null;default:user;index" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// User <-> Profile (owner side)
	Profiles []Profile `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

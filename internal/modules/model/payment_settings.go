package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentSettings is the admin-managed payment destination shown to users
// before they submit an access claim. At most one row is active at a time;
// bootstrap installs a partial unique index on is_active to enforce it.
type PaymentSettings struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	UPIID     string  `gorm:"column:upi_id;type:text;not null" json:"upi_id"`
	QRCodeKey string  `gorm:"column:qr_code_key;type:text" json:"qr_code_key,omitempty"`
	AccessFee float64 `gorm:"type:numeric;not null;default:500" json:"access_fee"`
	IsActive  bool    `gorm:"not null;default:true" json:"is_active"`

	LastUpdatedBy *uuid.UUID `gorm:"type:uuid" json:"last_updated_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PaymentSettings) TableName() string { return "payment_settings" }

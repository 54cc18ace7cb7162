package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

const (
	PaymentChannelUPI = "UPI"
	PaymentChannelQR  = "QR Code"
)

// AccessClaim is one payment assertion against one profile. The UTR number
// is globally unique for the lifetime of the system, including rejected
// claims, so a single payment proof can never unlock two profiles. Claims
// are never deleted; they are the audit trail of the access ledger.
type AccessClaim struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index:idx_claims_pair,priority:2" json:"profile_id"`
	ProfileName string    `gorm:"type:text;not null" json:"profile_name"`

	ViewerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_claims_pair,priority:1" json:"viewer_id"`
	ViewerName  string    `gorm:"type:text;not null" json:"viewer_name"`
	ViewerEmail string    `gorm:"type:text;not null" json:"viewer_email"`
	ViewerPhone string    `gorm:"type:text;not null" json:"viewer_phone"`

	AmountClaimed  float64 `gorm:"type:numeric;not null" json:"amount_claimed"`
	UTRNumber      string  `gorm:"column:utr_number;type:text;not null;uniqueIndex:idx_claims_utr" json:"utr_number"`
	PaymentChannel string  `gorm:"type:text;not null" json:"payment_channel"`
	ProofKey       string  `gorm:"type:text" json:"proof_key,omitempty"`

	Status string `gorm:"type:text;not null;default:pending;index" json:"status"`

	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	DecidedBy  *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	AdminNotes string     `gorm:"type:text" json:"admin_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Viewer  *User    `gorm:"foreignKey:ViewerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (AccessClaim) TableName() string { return "access_claims" }

func (c *AccessClaim) Decided() bool { return c.Status != ClaimStatusPending }

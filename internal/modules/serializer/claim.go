package serializer

import (
	"time"

	"github.com/google/uuid"

	"github.com/sangamhq/sangam/internal/modules/model"
)

// AccessClaimView is the ledger entry as returned to its viewer and to
// admins. The stored proof key stays internal; clients get a presigned URL.
type AccessClaimView struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	ProfileName string    `json:"profile_name"`

	ViewerID    uuid.UUID `json:"viewer_id"`
	ViewerName  string    `json:"user_name"`
	ViewerEmail string    `json:"user_email"`
	ViewerPhone string    `json:"user_phone"`

	AmountClaimed  float64 `json:"amount_paid"`
	UTRNumber      string  `json:"utr_number"`
	PaymentChannel string  `json:"payment_method"`
	ProofURL       string  `json:"payment_proof_url,omitempty"`

	Status     string     `json:"status"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	AdminNotes string     `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func BuildAccessClaim(c *model.AccessClaim, proofURL string) AccessClaimView {
	return AccessClaimView{
		ID:          c.ID,
		ProfileID:   c.ProfileID,
		ProfileName: c.ProfileName,

		ViewerID:    c.ViewerID,
		ViewerName:  c.ViewerName,
		ViewerEmail: c.ViewerEmail,
		ViewerPhone: c.ViewerPhone,

		AmountClaimed:  c.AmountClaimed,
		UTRNumber:      c.UTRNumber,
		PaymentChannel: c.PaymentChannel,
		ProofURL:       proofURL,

		Status:     c.Status,
		DecidedAt:  c.DecidedAt,
		AdminNotes: c.AdminNotes,

		CreatedAt: c.CreatedAt,
	}
}

func BuildAccessClaimList(claims []*model.AccessClaim, urlFor func(key string) string) []AccessClaimView {
	out := make([]AccessClaimView, 0, len(claims))
	for _, c := range claims {
		url := ""
		if urlFor != nil {
			url = urlFor(c.ProofKey)
		}
		out = append(out, BuildAccessClaim(c, url))
	}
	return out
}

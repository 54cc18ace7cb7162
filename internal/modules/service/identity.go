package service

import (
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/modules/model"
)

// Identity is the authenticated caller as carried through a request. A nil
// *Identity means the request is anonymous.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == model.RoleAdmin }

package model

// AccessLevel explains why a viewer sees what they see on a profile.
type AccessLevel string

const (
	AccessLevelNone  AccessLevel = "none"
	AccessLevelOwner AccessLevel = "owner"
	AccessLevelAdmin AccessLevel = "admin"
	AccessLevelPaid  AccessLevel = "paid"
)

// Full reports whether the level unlocks the premium field set.
func (l AccessLevel) Full() bool { return l != AccessLevelNone }

package profile

import "gorm.io/gorm"

// Member roles. Only players and coaches collect references; any role can
// give one.
const (
	RolePlayer = "player"
	RoleCoach  = "coach"
	RoleClub   = "club"
	RoleBrand  = "brand"
)

// ValidRole reports whether role is one of the known member roles.
func ValidRole(role string) bool {
	switch role {
	case RolePlayer, RoleCoach, RoleClub, RoleBrand:
		return true
	}
	return false
}

// Profile is a member account.
type Profile struct {
	gorm.Model
	DisplayName string `json:"display_name" gorm:"not null"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    string `json:"-"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role" gorm:"index;not null;default:'player'"`
}

// Summary is the read-only projection handed to other features for
// decorating their responses.
type Summary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role"`
}

func (p *Profile) Summary() Summary {
	return Summary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
	}
}

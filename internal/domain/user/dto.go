// internal/domain/user/dto.go
package user

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// Profile is the user view returned by the API: entitlement status is the
// derived effective status, not the raw stored enum.
type Profile struct {
	ID              int64              `json:"id"`
	Email           string             `json:"email"`
	FullName        string             `json:"full_name"`
	Phone           string             `json:"phone,omitempty"`
	Role            Role               `json:"role"`
	EffectiveStatus SubscriptionStatus `json:"subscription_status"`
	ExpiryDate      *time.Time         `json:"expiry_date,omitempty"`
	MaxPonds        int                `json:"max_ponds"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

// ProfileOf builds the API view of a user at the given time.
func ProfileOf(u *User, now time.Time) *Profile {
	p := &Profile{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Phone:           u.Phone,
		Role:            u.Role,
		EffectiveStatus: u.EffectiveStatus(now),
		MaxPonds:        u.MaxPonds,
	}
	if u.ExpiryDate.Valid {
		t := u.ExpiryDate.Time
		p.ExpiryDate = &t
	}
	return p
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account known to the storefront. Identity is owned by the external
// auth provider; ExternalAuthID links the two.
type User struct {
	ID             int64     `json:"id"`
	ExternalAuthID string    `json:"externalAuthId"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	DisplayName    *string   `json:"displayName,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Avatar         *string   `json:"avatar,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may perform moderation actions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanSell reports whether the user may list products.
func (u *User) CanSell() bool {
	return u != nil && (u.Role == RoleCreator || u.Role == RoleAdmin)
}

// UserProfileUpdate carries the optional profile fields a user may edit.
// Nil fields are left untouched.
type UserProfileUpdate struct {
	DisplayName *string
	Bio         *string
	Avatar      *string
}

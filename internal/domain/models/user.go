package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleProducer Role = "producer"
	RoleAdmin    Role = "admin"
)

// User is the persisted account record. Password is kept as the plaintext
// string the storefront stores; see DESIGN.md before reusing this layer
// anywhere near production.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Name        string     `json:"name"`
	Role        Role       `json:"role"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	FarmName    string     `json:"farmName,omitempty"`
	Description string     `json:"description,omitempty"`
	Blocked     bool       `json:"blocked"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin"`
}

// UserPatch lists the profile fields a caller may change. ID, Role, Blocked
// and CreatedAt deliberately have no slot here, so a profile edit can never
// escalate privileges.
type UserPatch struct {
	Email       *string `json:"email,omitempty" validate:"omitnil,email"`
	Password    *string `json:"password,omitempty" validate:"omitnil,min=6"`
	Name        *string `json:"name,omitempty" validate:"omitnil,min=2"`
	Phone       *string `json:"phone,omitempty" validate:"omitnil,loosephone"`
	Address     *string `json:"address,omitempty"`
	FarmName    *string `json:"farmName,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsZero reports whether the patch sets no fields at all.
func (p UserPatch) IsZero() bool {
	return p.Email == nil && p.Password == nil && p.Name == nil &&
		p.Phone == nil && p.Address == nil && p.FarmName == nil && p.Description == nil
}

// ApplyTo merges the set fields of the patch over u and returns the result.
func (p UserPatch) ApplyTo(u User) User {
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.Password != nil {
		u.Password = strings.TrimSpace(*p.Password)
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.FarmName != nil {
		u.FarmName = *p.FarmName
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	return u
}

// NormalizeEmail lowercases and trims an email the same way every lookup and
// uniqueness check does.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

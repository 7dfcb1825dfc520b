package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// RoleSystem is never stored; background workers act under it.
	RoleSystem = "system"
)

// User represents a marketplace account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the slice of a user attached to bookings and exports.
type UserSummary struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the authenticated caller, resolved once per request and
// handed to every service call.
type Identity struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool  { return i.Role == RoleAdmin }
func (i Identity) IsSystem() bool { return i.Role == RoleSystem }

// CanAccess reports whether the identity may act on a resource owned by ownerID.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || i.IsSystem() || (i.UserID != "" && i.UserID == ownerID)
}

// SystemIdentity is used by the payment reconcile worker.
var SystemIdentity = Identity{UserID: "system", Role: RoleSystem}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserRegistration is the body of POST /api/register.
type UserRegistration struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,len=10"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// ProfileUpdate is the body of PUT /api/users/profile.
type ProfileUpdate struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

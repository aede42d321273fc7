package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account. IsOrganizer is assigned once at signup
// by checking the email against the organizer allow-list and is never changed
// afterwards.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsOrganizer bool      `json:"is_organizer"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName returns "First Last" for notification recipients and exports.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsOrganizer bool      `json:"is_organizer"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsOrganizer: u.IsOrganizer,
		CreatedAt:   u.CreatedAt,
	}
}

// OrganizerAllowlistEntry is a pre-approved email granted organizer privilege
// automatically at signup. Seeded by operators; consumed once at account creation.
type OrganizerAllowlistEntry struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

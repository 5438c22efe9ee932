package entity

import (
	"time"
)

const DefaultProfilePicture = "user.png"

// User is the aggregate root for user domain
// Password holds the encoded credential only, never the plaintext.
type User struct {
	ID             string
	FullName       string
	Username       string
	Email          string
	Password       string `json:"-"`
	Role           Role
	ProfilePicture string
	IsActive       bool
	ActivationCode string
	CreatedAt      time.Time
}

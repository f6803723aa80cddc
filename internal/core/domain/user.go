package domain

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

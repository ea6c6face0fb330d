package models

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Member is a club member. Balance accumulates the amount due of every
// admitted booking and is reduced when a monthly statement is paid.
type Member struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Balance      float64   `bson:"balance" json:"balance"`
	JoinedAt     time.Time `bson:"joined_at" json:"joinedAt"`
}

// IsAdmin reports whether the member may use admin endpoints.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

package models

import (
	"fmt"
	"time"
)

const (
	StatementPending = "pending"
	StatementPaid    = "paid"
)

// Statement is a member's monthly bill: hours played and the amount owed.
type Statement struct {
	ID        string     `bson:"id" json:"id"` // "<memberID>:<YYYY-MM>"
	MemberID  string     `bson:"member_id" json:"memberId"`
	Year      int        `bson:"year" json:"year"`
	Month     int        `bson:"month" json:"month"`
	Hours     int        `bson:"hours" json:"hours"`
	Amount    float64    `bson:"amount" json:"amount"`
	Status    string     `bson:"status" json:"status"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	PaidAt    *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}

// StatementID builds the deterministic statement identifier.
func StatementID(memberID string, year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", memberID, year, month)
}

// StatementFilter narrows statement listings. Zero values match all.
type StatementFilter struct {
	Year     int
	Month    int
	MemberID string
	Status   string
}

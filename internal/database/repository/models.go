package repository

import "time"

// Prospect represents a prospects row.
type Prospect struct {
	Seq          int64     `db:"seq" json:"-"`
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	EmailAddress string    `db:"email_address" json:"emailAddress"`
	IsContacted  bool      `db:"is_contacted" json:"isContacted"`
	IsPinned     bool      `db:"is_pinned" json:"isPinned"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

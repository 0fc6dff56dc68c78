package model

import (
	"time"
)

// User is an account document. Favorites holds catalog movie IDs; the
// sequence is ordered and may contain repeats (appends are not
// deduplicated).
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	PasswordHash string     `json:"-" bson:"password_hash"` // Not exposed
	Email        string     `json:"email" bson:"email"`
	Birthday     *time.Time `json:"birthday,omitempty" bson:"birthday,omitempty"`
	Death        *time.Time `json:"death,omitempty" bson:"death,omitempty"`
	Favorites    []string   `json:"favorites" bson:"favorites"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// UserUpdate is the set of profile fields a user may change. Username
// is immutable and never part of an update. PasswordHash is set only
// when the caller supplied a new password.
type UserUpdate struct {
	PasswordHash *string
	Email        string
	Birthday     *time.Time
	Death        *time.Time
}

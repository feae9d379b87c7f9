package models

import "time"

// User defines the admin account model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // hashed, never serialized
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

package model

import "time"

// User represents an application user as stored in the `users` table.
// Accounts start out unverified: signup stores a random verification
// token in VerifyToken and the account may not log in until the token
// has been redeemed, at which point the column is set to NULL.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address, stored lowercased.
//  Name         – given name.
//  Surname      – family name.
//  PasswordHash – bcrypt hashed password.
//  VerifyToken  – pending email verification token (nil once verified).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	VerifyToken  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Verified reports whether the account has redeemed its verification
// token and is allowed to log in.
func (u User) Verified() bool { return u.VerifyToken == nil }

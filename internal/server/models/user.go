package models

import "time"

// UserType is the business category an account belongs to.
type UserType string

const (
	UserTypeBorrower UserType = "borrower"
	UserTypeLender   UserType = "lender"
	UserTypeAdmin    UserType = "admin"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeBorrower, UserTypeLender, UserTypeAdmin:
		return true
	}
	return false
}

// User is an account record. Email is the business key and is unique across
// all accounts. PasswordHash only ever holds a one-way hash, never the
// plaintext secret. Activated is false until the out-of-band confirmation
// flow flips it.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	UserType     UserType
	Activated    bool
	CreatedAt    time.Time
}

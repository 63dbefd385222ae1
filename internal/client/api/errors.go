package api

import "errors"

// ErrAccountNotActivated is returned when login is attempted on an account
// that has not confirmed its email yet.
var ErrAccountNotActivated = errors.New("account not activated")

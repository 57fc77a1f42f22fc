package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string
}

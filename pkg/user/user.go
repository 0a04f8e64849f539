package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("invalid user data")
	ErrUsernameTaken   = errors.New("username already taken")
)

// User owns one set of favorites and one weekly plan. Requests select the user by Uid.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	CreatedAt   time.Time
}

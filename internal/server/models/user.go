package models

import "time"

// User is a stored identity. PasswordHash never leaves the server; use View
// for anything sent to a caller.
type User struct {
	ID           string
	UserName     string
	FullName     string
	Nickname     *string
	PasswordHash string
	DateCreated  time.Time
}

// UserView is the externally visible representation of a User.
type UserView struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	FullName    string    `json:"full_name"`
	Nickname    string    `json:"nickname"`
	DateCreated time.Time `json:"date_created"`
}

// View returns the sanitized representation of u. A NULL nickname reads as "".
func (u *User) View() *UserView {
	v := &UserView{
		ID:          u.ID,
		UserName:    u.UserName,
		FullName:    u.FullName,
		DateCreated: u.DateCreated,
	}
	if u.Nickname != nil {
		v.Nickname = *u.Nickname
	}
	return v
}

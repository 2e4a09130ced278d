package models

import "time"

// User carries the notification-relevant part of the user profile: the
// first name used in message templates and the address messages go to.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Clone() *User {
	c := *u
	return &c
}

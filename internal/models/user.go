package models

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	TaskIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import "time"

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
}

package services

import (
	"context"
	"errors"
	"time"

	"taskpad/internal/models"
)

var (
	ErrMissingFields      = errors.New("please fill all the fields")
	ErrPasswordTooShort   = errors.New("password should be at least 4 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserIDRequired     = errors.New("user id is required")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
)

type AuthService interface {
	// Register validates the given name, email and password,
	// hashes the password, persists the user and issues a signed
	// token with the new user ID as the subject.
	//
	// It returns ErrMissingFields, ErrPasswordTooShort or
	// ErrInvalidEmail on validation failure and ErrEmailTaken
	// if a user with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (string, error)

	// Login authenticates the user by email and password and
	// issues a signed token with the user ID as the subject.
	//
	// It returns ErrInvalidCredentials both when no user with the
	// given email exists and when the password doesn't match, so
	// the caller can't tell the two cases apart.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// ListUsers returns every registered user. The password
	// hash is never populated in the result.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type TaskService interface {
	// AddTask creates a task owned by the given user and appends
	// its ID to the user's task list. The two writes are
	// independent statements, not a transaction.
	//
	// It returns ErrMissingFields if the title or description is
	// empty and ErrUserNotFound if the user doesn't exist.
	AddTask(ctx context.Context, params AddTaskParams) (*models.Task, error)

	// ListTasks returns every task owned by the given user, or
	// ErrUserNotFound if the user doesn't exist.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// History returns the user's tasks created within the last
	// seven days, grouped by calendar day, most recent day first.
	// Days without tasks produce no group.
	History(ctx context.Context, userID string) ([]TaskDayGroup, error)

	// RemoveTask deletes the task and removes its ID from the
	// given user's task list. Both IDs must resolve, but the task
	// is not required to belong to the given user.
	RemoveTask(ctx context.Context, params RemoveTaskParams) error

	// CompleteTask marks the task as completed. Completing an
	// already completed task succeeds and leaves it completed.
	CompleteTask(ctx context.Context, taskID string) error

	// UpdateTask overwrites the task's title, description and
	// completion flag with the given values, zero values included.
	UpdateTask(ctx context.Context, params UpdateTaskParams) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID         string
	Name           string
	Token          string
	TokenExpiresAt time.Time
}

type AddTaskParams struct {
	UserID      string
	Title       string
	Description string
}

type RemoveTaskParams struct {
	UserID string
	TaskID string
}

type UpdateTaskParams struct {
	ID          string
	Title       string
	Description string
	IsCompleted bool
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskpad/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) AddTask(ctx context.Context, params AddTaskParams) (*models.Task, error) {
	if params.Title == "" || params.Description == "" {
		return nil, ErrMissingFields
	}

	err := s.checkUserExists(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		IsCompleted: false,
		CreatedAt:   time.Now(),
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   is_completed,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	// Second half of the dual write. A crash between the two
	// statements leaves an orphaned task; accepted best-effort.
	const appendTaskIDQuery = `
UPDATE users
SET task_ids = array_append(task_ids, $1),
    updated_at = $2
WHERE id = $3
`
	_, err = s.pgPool.Exec(
		ctx,
		appendTaskIDQuery,
		task.ID,
		time.Now(),
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to append task id to user")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	err := s.checkUserExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       is_completed,
       created_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks, err := s.scanTasks(rows, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) History(ctx context.Context, userID string) ([]TaskDayGroup, error) {
	err := s.checkUserExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startDate := startOfDay(now.AddDate(0, 0, -historyWindowDays))
	endDate := endOfDay(now)

	const selectRecentTasksQuery = `
SELECT id,
       title,
       description,
       is_completed,
       created_at
FROM tasks
WHERE user_id = $1 AND
      created_at BETWEEN $2 AND $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectRecentTasksQuery,
		userID,
		startDate,
		endDate,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select recent tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := s.scanTasks(rows, userID)
	if err != nil {
		return nil, err
	}

	groups := groupTasksByDay(tasks)
	s.logger.Info().
		Int("days", len(groups)).
		Str("user_id", userID).
		Msg("built task history")
	return groups, nil
}

func (s *taskServiceImpl) RemoveTask(ctx context.Context, params RemoveTaskParams) error {
	if params.UserID == "" {
		return ErrUserIDRequired
	}

	err := s.checkUserExists(ctx, params.UserID)
	if err != nil {
		return err
	}
	err = s.checkTaskExists(ctx, params.TaskID)
	if err != nil {
		return err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	_, err = s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		params.TaskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.TaskID).
			Msg("failed to delete task")
		return err
	}
	s.logger.Debug().
		Str("task_id", params.TaskID).
		Msg("deleted task")

	// The reference is pulled from the supplied user, which is
	// not necessarily the owner. If it isn't, the owner keeps a
	// dangling reference.
	const removeTaskIDQuery = `
UPDATE users
SET task_ids = array_remove(task_ids, $1),
    updated_at = $2
WHERE id = $3
`
	_, err = s.pgPool.Exec(
		ctx,
		removeTaskIDQuery,
		params.TaskID,
		time.Now(),
		params.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to remove task id from user")
		return err
	}

	s.logger.Info().
		Str("task_id", params.TaskID).
		Str("user_id", params.UserID).
		Msg("removed task")
	return nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID string) error {
	err := s.checkTaskExists(ctx, taskID)
	if err != nil {
		return err
	}

	const completeTaskQuery = `
UPDATE tasks
SET is_completed = TRUE
WHERE id = $1
`
	_, err = s.pgPool.Exec(
		ctx,
		completeTaskQuery,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to complete task")
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("completed task")
	return nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) error {
	err := s.checkTaskExists(ctx, params.ID)
	if err != nil {
		return err
	}

	// Full overwrite: empty values are written as-is.
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    is_completed = $3
WHERE id = $4
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		params.Title,
		params.Description,
		params.IsCompleted,
		params.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return err
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Msg("updated task")
	return nil
}

func (s *taskServiceImpl) checkUserExists(ctx context.Context, userID string) error {
	const selectUserIDQuery = `
SELECT id
FROM users
WHERE id = $1
`
	var id string
	err := s.pgPool.QueryRow(ctx, selectUserIDQuery, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("user_id", userID).
				Msg("user not found")
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select user by id")
		return err
	}
	return nil
}

func (s *taskServiceImpl) checkTaskExists(ctx context.Context, taskID string) error {
	const selectTaskIDQuery = `
SELECT id
FROM tasks
WHERE id = $1
`
	var id string
	err := s.pgPool.QueryRow(ctx, selectTaskIDQuery, taskID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", taskID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task by id")
		return err
	}
	return nil
}

func (s *taskServiceImpl) scanTasks(rows pgx.Rows, userID string) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.IsCompleted,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err := rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tasks, nil
}

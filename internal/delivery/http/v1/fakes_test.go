package v1

import (
	"context"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

// In-memory stand-ins for the pgx-backed services, faithful to the
// same sentinel errors and reference-list semantics.

type fakeAuthService struct {
	users map[string]*models.User // keyed by id
	err   error                   // forced failure, when set
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{users: make(map[string]*models.User)}
}

func (s *fakeAuthService) addUser(id, name, email, password string) *models.User {
	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  password,
		TaskIDs:   []string{},
		CreatedAt: time.Now(),
	}
	s.users[id] = user
	return user
}

func (s *fakeAuthService) findByEmail(email string) *models.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

func (s *fakeAuthService) Register(_ context.Context, params services.RegisterParams) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return "", services.ErrMissingFields
	}
	if len(params.Password) < 4 {
		return "", services.ErrPasswordTooShort
	}
	if s.findByEmail(params.Email) != nil {
		return "", services.ErrEmailTaken
	}
	user := s.addUser("user-"+params.Email, params.Name, params.Email, params.Password)
	return "token-for-" + user.ID, nil
}

func (s *fakeAuthService) Login(_ context.Context, params services.LoginParams) (*services.LoginResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if params.Email == "" || params.Password == "" {
		return nil, services.ErrMissingFields
	}
	user := s.findByEmail(params.Email)
	if user == nil || user.Password != params.Password {
		return nil, services.ErrInvalidCredentials
	}
	return &services.LoginResult{
		UserID:         user.ID,
		Name:           user.Name,
		Token:          "token-for-" + user.ID,
		TokenExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

func (s *fakeAuthService) ListUsers(_ context.Context) ([]*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		// Password is never populated in the listing.
		listed := *user
		listed.Password = ""
		users = append(users, &listed)
	}
	return users, nil
}

type fakeTaskService struct {
	auth  *fakeAuthService
	tasks map[string]*models.Task
	err   error
}

func newFakeTaskService(auth *fakeAuthService) *fakeTaskService {
	return &fakeTaskService{auth: auth, tasks: make(map[string]*models.Task)}
}

func (s *fakeTaskService) addTask(id, userID, title, description string) *models.Task {
	task := &models.Task{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.tasks[id] = task
	if user, ok := s.auth.users[userID]; ok {
		user.TaskIDs = append(user.TaskIDs, id)
	}
	return task
}

func (s *fakeTaskService) AddTask(_ context.Context, params services.AddTaskParams) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	if params.Title == "" || params.Description == "" {
		return nil, services.ErrMissingFields
	}
	if _, ok := s.auth.users[params.UserID]; !ok {
		return nil, services.ErrUserNotFound
	}
	id := "task-" + params.Title
	return s.addTask(id, params.UserID, params.Title, params.Description), nil
}

func (s *fakeTaskService) ListTasks(_ context.Context, userID string) ([]*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.auth.users[userID]; !ok {
		return nil, services.ErrUserNotFound
	}
	var tasks []*models.Task
	for _, task := range s.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *fakeTaskService) History(_ context.Context, userID string) ([]services.TaskDayGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.auth.users[userID]; !ok {
		return nil, services.ErrUserNotFound
	}
	tasks, _ := s.ListTasks(context.Background(), userID)
	if len(tasks) == 0 {
		return nil, nil
	}
	return []services.TaskDayGroup{{
		Date:    time.Now().Format(time.DateOnly),
		DayName: time.Now().Weekday().String(),
		Tasks:   tasks,
	}}, nil
}

func (s *fakeTaskService) RemoveTask(_ context.Context, params services.RemoveTaskParams) error {
	if s.err != nil {
		return s.err
	}
	if params.UserID == "" {
		return services.ErrUserIDRequired
	}
	user, ok := s.auth.users[params.UserID]
	if !ok {
		return services.ErrUserNotFound
	}
	if _, ok := s.tasks[params.TaskID]; !ok {
		return services.ErrTaskNotFound
	}
	delete(s.tasks, params.TaskID)
	// Reference pulled from the supplied user only.
	user.TaskIDs = slices.DeleteFunc(user.TaskIDs, func(id string) bool {
		return id == params.TaskID
	})
	return nil
}

func (s *fakeTaskService) CompleteTask(_ context.Context, taskID string) error {
	if s.err != nil {
		return s.err
	}
	task, ok := s.tasks[taskID]
	if !ok {
		return services.ErrTaskNotFound
	}
	task.IsCompleted = true
	return nil
}

func (s *fakeTaskService) UpdateTask(_ context.Context, params services.UpdateTaskParams) error {
	if s.err != nil {
		return s.err
	}
	task, ok := s.tasks[params.ID]
	if !ok {
		return services.ErrTaskNotFound
	}
	task.Title = params.Title
	task.Description = params.Description
	task.IsCompleted = params.IsCompleted
	return nil
}

func newTestRouter(auth services.AuthService, tasks services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, New(zerolog.Nop(), auth, tasks, false))
	return router
}

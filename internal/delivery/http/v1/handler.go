package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskpad/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleListUsers(c *gin.Context)

	HandleAddTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleHistory(c *gin.Context)
	HandleRemoveTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
}

type handlerImpl struct {
	logger       zerolog.Logger
	auth         services.AuthService
	tasks        services.TaskService
	secureCookie bool
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	secureCookie bool,
) Handler {
	return &handlerImpl{
		logger:       logger,
		auth:         authService,
		tasks:        taskService,
		secureCookie: secureCookie,
	}
}

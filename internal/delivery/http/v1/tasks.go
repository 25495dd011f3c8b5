package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

type getTaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		User:        task.UserID,
		CreatedAt:   task.CreatedAt,
	}
}

func newGetTaskResponses(tasks []*models.Task) []getTaskResponse {
	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	return response
}

type addTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *handlerImpl) HandleAddTask(c *gin.Context) {
	userID := c.Query("id")

	var req addTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.AddTask(c, services.AddTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "task added successfully",
		"task":    newGetTaskResponse(task),
	})
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID := c.Query("id")

	tasks, err := h.tasks.ListTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   newGetTaskResponses(tasks),
	})
}

type taskDayGroupResponse struct {
	Date    string            `json:"date"`
	DayName string            `json:"dayName"`
	Tasks   []getTaskResponse `json:"tasks"`
}

func (h *handlerImpl) HandleHistory(c *gin.Context) {
	userID := c.Query("id")

	groups, err := h.tasks.History(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get task history")
		abortServiceError(c, err)
		return
	}

	response := make([]taskDayGroupResponse, len(groups))
	for i, group := range groups {
		response[i] = taskDayGroupResponse{
			Date:    group.Date,
			DayName: group.DayName,
			Tasks:   newGetTaskResponses(group.Tasks),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"tasksByDay": response,
	})
}

type removeTaskRequest struct {
	TaskID string `json:"taskId"`
}

func (h *handlerImpl) HandleRemoveTask(c *gin.Context) {
	userID := c.Param("userId")

	var req removeTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.RemoveTask(c, services.RemoveTaskParams{
		UserID: userID,
		TaskID: req.TaskID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to remove task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "task deleted successfully",
	})
}

type completeTaskRequest struct {
	TaskID string `json:"taskId"`
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	var req completeTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.CompleteTask(c, req.TaskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to complete task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "task completed successfully",
	})
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Query("id")

	// Absent fields arrive as zero values and overwrite the
	// stored ones. Full-overwrite semantics, no partial merge.
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "task updated successfully",
	})
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, h Handler) {
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
	})

	api := router.Group("/api/v1")

	userRouter := api.Group("/user")
	userRouter.POST("/register", h.HandleRegister)
	userRouter.POST("/login", h.HandleLogin)
	userRouter.GET("/all", h.HandleListUsers)

	taskRouter := api.Group("/task")
	taskRouter.POST("/add-task", h.HandleAddTask)
	taskRouter.GET("/all", h.HandleListTasks)
	taskRouter.GET("/history", h.HandleHistory)
	taskRouter.DELETE("/delete-task/:userId", h.HandleRemoveTask)
	taskRouter.PUT("/complete-task", h.HandleCompleteTask)
	taskRouter.PUT("/update-task", h.HandleUpdateTask)
}

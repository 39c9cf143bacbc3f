package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nathanl0204/project-bot/internal/middleware"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Tasks        *TaskHandler
	Weeks        *WeekHandler
	Interactions *InteractionHandler

	// ChannelID, when non-empty, restricts mutation commands to that
	// channel.
	ChannelID string
}

// SetupRouter builds the gin engine with all routes mounted.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		restricted := middleware.RequireChannel(deps.ChannelID)

		tasks := api.Group("/tasks")
		{
			tasks.POST("", restricted, deps.Tasks.CreateTask)
			tasks.GET("/:id", deps.Tasks.GetTask)
			tasks.DELETE("/:id", deps.Tasks.DeleteTask)
			tasks.POST("/:id/complete", deps.Tasks.CompleteTask)
		}

		weeks := api.Group("/weeks")
		{
			weeks.GET("/tasks", deps.Weeks.ListTasks)
			weeks.GET("/progress", deps.Weeks.Progress)
			weeks.POST("/announce", restricted, deps.Weeks.Announce)
		}

		api.POST("/interactions", deps.Interactions.HandleInteraction)
	}

	return r
}

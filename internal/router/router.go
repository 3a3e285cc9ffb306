package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nyrix-co/projecthub/internal/events"
	"github.com/nyrix-co/projecthub/internal/handlers"
	"github.com/nyrix-co/projecthub/internal/middleware"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/tags"
	"github.com/nyrix-co/projecthub/internal/team"
	"github.com/nyrix-co/projecthub/internal/types"
)

// Deps carries everything the route table needs.
type Deps struct {
	DB         *gorm.DB
	Directory  *team.Directory
	Notifier   *services.Notifier
	SMTPMailer *services.SMTPMailer
	Hub        *events.Hub
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", "X-Member-Email"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.MemberResolver(deps.Directory))

	parser := tags.NewParser(deps.Directory)

	projectService := services.NewProjectService(deps.DB)
	taskService := services.NewTaskService(deps.DB, parser)

	taskService.OnCommit(services.NotificationHook(deps.Notifier, deps.Directory))
	taskService.OnCommit(events.BroadcastHook(deps.Hub))
	projectService.OnCommit(events.BroadcastHook(deps.Hub))

	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(taskService)
	teamHandler := handlers.NewTeamHandler(deps.Directory)
	emailHandler := handlers.NewEmailHandler(deps.SMTPMailer)
	wsHandler := handlers.NewWSHandler(deps.Hub)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/team", teamHandler.List)
		api.GET("/ws/:project_id", wsHandler.Serve)

		api.POST("/send-email", emailHandler.Send)
		api.GET("/send-email", emailHandler.Verify)

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:project_id", projectHandler.Get)
			projects.PATCH("/:project_id", projectHandler.Update)
			projects.DELETE("/:project_id", projectHandler.Delete)

			projects.GET("/:project_id/tasks", taskHandler.ListByProject)
			projects.POST("/:project_id/tasks", taskHandler.Create)
		}

		tasksGroup := api.Group("/tasks")
		{
			tasksGroup.GET("", taskHandler.List)
			tasksGroup.PATCH("/:task_id", taskHandler.Update)
			tasksGroup.DELETE("/:task_id", taskHandler.Delete)

			tasksGroup.POST("/:task_id/comments", commentHandler.Create)
		}

		api.DELETE("/comments/:comment_id", commentHandler.Delete)
	}

	return r
}

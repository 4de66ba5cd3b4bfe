package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/pawkeep/reminder-service/internal/api/handlers/reminder"
	"github.com/pawkeep/reminder-service/internal/api/respond"
)

// New builds the HTTP router with the reminder CRUD routes and the
// liveness endpoint.
func New(handler *reminder.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/health", func(c *ginext.Context) {
		respond.JSON(c.Writer, http.StatusOK, map[string]string{"status": "ok"})
	})

	reminders := e.Group("/reminders")

	reminders.POST("", handler.Create)
	reminders.GET("", handler.List)
	reminders.GET("/:id", handler.Get)
	reminders.PUT("/:id", handler.Update)
	reminders.DELETE("/:id", handler.Delete)

	return e
}

package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotboard/handlers"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Schedule *handlers.ScheduleHandler
	People   *handlers.PeopleHandler
	Notes    *handlers.NotesHandler
	Parse    *handlers.ParseHandler
	Export   *handlers.ExportHandler
}

// RegisterScheduleRoutes registers the calendar and slot endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("/month", hb.Schedule.MonthViewHandler)
		api.GET("/day", hb.Schedule.DayViewHandler)
		api.GET("/sync", hb.Schedule.SyncStatusHandler)
		api.GET("/unit/:unitKey", hb.Schedule.ResolveUnitHandler)
	}

	slots := r.Group("/api/slots")
	{
		slots.POST("", hb.Schedule.CreateSlotHandler)
		slots.PUT("/:slotID", hb.Schedule.RebookSlotHandler)
		slots.DELETE("/:slotID", hb.Schedule.DeleteSlotHandler)
	}
}

// RegisterPeopleRoutes registers the interviewer roster endpoints.
func RegisterPeopleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/people")
	{
		api.GET("", hb.People.ListPeopleHandler)
		api.PATCH("/:personID", hb.People.UpdatePersonHandler)
	}
}

// RegisterNoteRoutes registers the day-note endpoints.
func RegisterNoteRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notes")
	{
		api.GET("", hb.Notes.ListNotesHandler)
		api.PUT("/:date", hb.Notes.UpsertNoteHandler)
		api.DELETE("/:date", hb.Notes.DeleteNoteHandler)
	}
}

// RegisterAIRoutes registers the free-text parse endpoint.
func RegisterAIRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.POST("/parse", hb.Parse.ParseAvailabilityHandler)
	}
}

// RegisterExportRoutes registers the read-only export bundle.
func RegisterExportRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/export", hb.Export.ExportBundleHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// SetupCORS configures cross-origin access for the calendar frontend.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

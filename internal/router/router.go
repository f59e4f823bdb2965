package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fberrez/minihabits/api/handler"
)

type Handlers struct {
	Habit  *apiHandler.HabitHandler
	Stats  *apiHandler.StatsHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public routes
	r.GET("/api/v1/habits/types", handlers.Habit.HabitTypes)
	r.GET("/api/v1/stats/home", handlers.Stats.HomeStats)

	// Protected routes
	r.GET("/api/v1/habits", authMiddleware(handlers.Habit.ListHabits))
	r.POST("/api/v1/habits", authMiddleware(handlers.Habit.CreateHabit))
	r.DELETE("/api/v1/habits", authMiddleware(handlers.Habit.DeleteAllHabits))
	r.GET("/api/v1/habits/{id}", authMiddleware(handlers.Habit.GetHabit))
	r.PUT("/api/v1/habits/{id}", authMiddleware(handlers.Habit.UpdateHabit))
	r.DELETE("/api/v1/habits/{id}", authMiddleware(handlers.Habit.DeleteHabit))
	r.POST("/api/v1/habits/{id}/track", authMiddleware(handlers.Habit.TrackHabit))
	r.POST("/api/v1/habits/{id}/untrack", authMiddleware(handlers.Habit.UntrackHabit))
	r.GET("/api/v1/habits/{id}/stats", authMiddleware(handlers.Habit.HabitStats))

	r.GET("/api/v1/stats", authMiddleware(handlers.Stats.UserStats))

	return r
}

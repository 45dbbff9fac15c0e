package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthhold/homekeep/internal/liveupdate"
	"github.com/hearthhold/homekeep/internal/service"
)

const (
	topicTasks         = "tasks"
	topicSchedules     = "schedules"
	topicIntervalTasks = "interval_tasks"
	topicDailyEntries  = "daily_entries"
	topicUsers         = "users"
)

type Server struct {
	mx                  *chi.Mux
	scheduleService     service.ScheduleServiceI
	taskService         service.TaskServiceI
	intervalTaskService service.IntervalTaskServiceI
	dailyService        service.DailyScheduleServiceI
	historyService      service.HistoryServiceI
	userService         service.UserServiceI
	hub                 *liveupdate.Hub
}

type ServicesList struct {
	ScheduleService     service.ScheduleServiceI
	TaskService         service.TaskServiceI
	IntervalTaskService service.IntervalTaskServiceI
	DailyService        service.DailyScheduleServiceI
	HistoryService      service.HistoryServiceI
	UserService         service.UserServiceI
	Hub                 *liveupdate.Hub
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                  chi.NewMux(),
		scheduleService:     servicesOptions.ScheduleService,
		taskService:         servicesOptions.TaskService,
		intervalTaskService: servicesOptions.IntervalTaskService,
		dailyService:        servicesOptions.DailyService,
		historyService:      servicesOptions.HistoryService,
		userService:         servicesOptions.UserService,
		hub:                 servicesOptions.Hub,
	}
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", s.CreateSchedule)
			r.Get("/", s.GetSchedules)
			r.Get("/{id}", s.GetSchedule)
			r.Put("/{id}", s.UpdateSchedule)
			r.Delete("/{id}", s.DeleteSchedule)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.GetTasksRange)
			r.Post("/", s.CreateTask)
			r.Post("/{id}/complete", s.CompleteTask)
			r.Post("/{id}/uncomplete", s.UncompleteTask)
			r.Post("/{id}/postpone", s.PostponeTask)
			r.Post("/{id}/reassign", s.ReassignTask)
			r.Delete("/{id}", s.DeleteTask)
		})
		r.Post("/housekeeping/run", s.RunHousekeeping)
		r.Route("/interval-tasks", func(r chi.Router) {
			r.Post("/", s.CreateIntervalTask)
			r.Get("/", s.GetIntervalTasks)
			r.Get("/categories", s.GetIntervalTaskCategories)
			r.Get("/{id}", s.GetIntervalTask)
			r.Put("/{id}", s.UpdateIntervalTask)
			r.Delete("/{id}", s.DeleteIntervalTask)
			r.Post("/{id}/complete", s.CompleteIntervalTask)
			r.Get("/{id}/history", s.GetIntervalTaskHistory)
		})
		r.Get("/history", s.GetHistory)
		r.Route("/daily-entries", func(r chi.Router) {
			r.Post("/", s.CreateDailyEntry)
			r.Get("/", s.GetDailyEntries)
			r.Put("/{id}", s.UpdateDailyEntry)
			r.Delete("/{id}", s.DeleteDailyEntry)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.CreateUser)
			r.Get("/", s.GetUsers)
		})
		r.Get("/updates", s.GetUpdates)
	})
}

func (s *Server) Run(address string) error {
	s.routes()
	return http.ListenAndServe(address, s.mx)
}

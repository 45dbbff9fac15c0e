package main

import (
	"log"

	"github.com/hearthhold/homekeep/internal/api"
	"github.com/hearthhold/homekeep/internal/liveupdate"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/cleanup"
	"github.com/hearthhold/homekeep/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	serv := api.New(&api.ServicesList{
		ScheduleService:     service.NewScheduleService(repository.NewSchedulesRepo(&dbCfg)),
		TaskService:         service.NewTaskService(repository.NewTasksRepo(&dbCfg)),
		IntervalTaskService: service.NewIntervalTaskService(repository.NewIntervalTasksRepo(&dbCfg)),
		DailyService:        service.NewDailyScheduleService(repository.NewDailyEntriesRepo(&dbCfg)),
		HistoryService:      service.NewHistoryService(repository.NewHistoryRepo(&dbCfg)),
		UserService:         service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		Hub:                 liveupdate.New(),
	})
	err := serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

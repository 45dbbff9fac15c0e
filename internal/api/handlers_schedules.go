package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/httputil"
)

type ScheduleRequest struct {
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	IntervalDays int        `json:"interval_days"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	IsBoth       bool       `json:"is_both"`
	StartDate    *string    `json:"start_date"`
	CreatedBy    uuid.UUID  `json:"created_by"`
}

func (s *Server) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req ScheduleRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create schedule error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq := service.CreateScheduleRequest{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: req.IntervalDays,
		AssignedTo:   req.AssignedTo,
		IsBoth:       req.IsBoth,
		CreatedBy:    req.CreatedBy,
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			logger.Error("create schedule error: invalid start_date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
			return
		}
		serviceReq.StartDate = &startDate
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	schedule, err := s.scheduleService.Create(ctx, &serviceReq)
	if err != nil {
		writeServiceError(w, logger, "create schedule", err)
		return
	}
	s.hub.Notify(topicSchedules)
	s.hub.Notify(topicTasks)
	httputil.WriteJSONResponse(w, http.StatusCreated, schedule)
	logger.Info("schedule created")
}

func (s *Server) GetSchedules(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	overviews, err := s.scheduleService.List(ctx)
	if err != nil {
		writeServiceError(w, logger, "list schedules", err)
		return
	}
	resp := make([]scheduleOverviewResponse, 0, len(overviews))
	for _, o := range overviews {
		resp = append(resp, toScheduleOverviewResponse(o))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("schedules provided")
}

func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get schedule error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid schedule id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	schedule, err := s.scheduleService.Get(ctx, id)
	if err != nil {
		writeServiceError(w, logger, "get schedule", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, schedule)
	logger.Info("schedule provided")
}

func (s *Server) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update schedule error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid schedule id in path value", nil)
		return
	}
	var req ScheduleRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update schedule error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	schedule, err := s.scheduleService.Update(ctx, id, &service.UpdateScheduleRequest{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: req.IntervalDays,
		AssignedTo:   req.AssignedTo,
		IsBoth:       req.IsBoth,
	})
	if err != nil {
		writeServiceError(w, logger, "update schedule", err)
		return
	}
	s.hub.Notify(topicSchedules)
	s.hub.Notify(topicTasks)
	httputil.WriteJSONResponse(w, http.StatusOK, schedule)
	logger.Info("schedule updated")
}

func (s *Server) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("schedule deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid schedule id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.scheduleService.Delete(ctx, id); err != nil {
		writeServiceError(w, logger, "delete schedule", err)
		return
	}
	s.hub.Notify(topicSchedules)
	s.hub.Notify(topicTasks)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("schedule deleted")
}

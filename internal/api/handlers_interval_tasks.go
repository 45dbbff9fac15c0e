package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/httputil"
)

type IntervalTaskRequest struct {
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	IntervalDays int       `json:"interval_days"`
	CreatedBy    uuid.UUID `json:"created_by"`
}

func (s *Server) CreateIntervalTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req IntervalTaskRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create interval task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	task, err := s.intervalTaskService.Create(ctx, &service.IntervalTaskRequest{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: req.IntervalDays,
		CreatedBy:    req.CreatedBy,
	}, time.Now())
	if err != nil {
		writeServiceError(w, logger, "create interval task", err)
		return
	}
	s.hub.Notify(topicIntervalTasks)
	httputil.WriteJSONResponse(w, http.StatusCreated, toIntervalTaskResponse(task))
	logger.Info("interval task created")
}

func (s *Server) GetIntervalTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	tasks, err := s.intervalTaskService.List(ctx, time.Now())
	if err != nil {
		writeServiceError(w, logger, "list interval tasks", err)
		return
	}
	resp := make([]intervalTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toIntervalTaskResponse(t))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("interval tasks provided")
}

func (s *Server) GetIntervalTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get interval task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid interval task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	task, err := s.intervalTaskService.Get(ctx, id, time.Now())
	if err != nil {
		writeServiceError(w, logger, "get interval task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, toIntervalTaskResponse(task))
	logger.Info("interval task provided")
}

func (s *Server) UpdateIntervalTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update interval task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid interval task id in path value", nil)
		return
	}
	var req IntervalTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update interval task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	task, err := s.intervalTaskService.Update(ctx, id, &service.IntervalTaskRequest{
		Title:        req.Title,
		Category:     req.Category,
		IntervalDays: req.IntervalDays,
		CreatedBy:    req.CreatedBy,
	}, time.Now())
	if err != nil {
		writeServiceError(w, logger, "update interval task", err)
		return
	}
	s.hub.Notify(topicIntervalTasks)
	httputil.WriteJSONResponse(w, http.StatusOK, toIntervalTaskResponse(task))
	logger.Info("interval task updated")
}

func (s *Server) DeleteIntervalTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("interval task deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid interval task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.intervalTaskService.Delete(ctx, id); err != nil {
		writeServiceError(w, logger, "delete interval task", err)
		return
	}
	s.hub.Notify(topicIntervalTasks)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("interval task deleted")
}

func (s *Server) CompleteIntervalTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("complete interval task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid interval task id in path value", nil)
		return
	}
	var req CompleteTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.UserID == uuid.Nil {
		logger.Error("complete interval task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.intervalTaskService.Complete(ctx, id, req.UserID, time.Now()); err != nil {
		writeServiceError(w, logger, "complete interval task", err)
		return
	}
	s.hub.Notify(topicIntervalTasks)
	task, err := s.intervalTaskService.Get(ctx, id, time.Now())
	if err != nil {
		writeServiceError(w, logger, "complete interval task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, toIntervalTaskResponse(task))
	logger.Info("interval task completed")
}

func (s *Server) GetIntervalTaskHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("interval task history error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid interval task id in path value", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	completions, err := s.intervalTaskService.History(ctx, id, limit)
	if err != nil {
		writeServiceError(w, logger, "interval task history", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, completions)
	logger.Info("interval task history provided")
}

func (s *Server) GetIntervalTaskCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	categories, err := s.intervalTaskService.Categories(ctx)
	if err != nil {
		writeServiceError(w, logger, "interval task categories", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, categories)
	logger.Info("interval task categories provided")
}

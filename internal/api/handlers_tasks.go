package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/httputil"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

type CreateTaskRequest struct {
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Date       *string    `json:"date"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	IsBoth     bool       `json:"is_both"`
}

type CompleteTaskRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type PostponeTaskRequest struct {
	Date *string `json:"date"`
}

type ReassignTaskRequest struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
	IsBoth     bool       `json:"is_both"`
}

// GetTasksRange serves the "this week" view. Housekeeping runs inline before
// the query, so stale open occurrences are already advanced to today.
func (s *Server) GetTasksRange(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		logger.Error("get tasks error: invalid from date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "from must be YYYY-MM-DD", nil)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		logger.Error("get tasks error: invalid to date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "to must be YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	view, err := s.taskService.RangeView(ctx, from, to, time.Now())
	if err != nil {
		writeServiceError(w, logger, "get tasks", err)
		return
	}
	resp := rangeViewResponse{
		From:   recurrence.DateOnly(from).Format(dateLayout),
		To:     recurrence.DateOnly(to).Format(dateLayout),
		Tasks:  make([]taskResponse, 0, len(view.Tasks)),
		Ghosts: make([]ghostResponse, 0, len(view.Ghosts)),
	}
	for _, t := range view.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	for _, g := range view.Ghosts {
		resp.Ghosts = append(resp.Ghosts, toGhostResponse(g))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("tasks provided")
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CreateTaskRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq := service.CreateTaskRequest{
		Title:      req.Title,
		Category:   req.Category,
		AssignedTo: req.AssignedTo,
		IsBoth:     req.IsBoth,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			logger.Error("create task error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		serviceReq.Date = &date
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	task, err := s.taskService.CreateStandalone(ctx, &serviceReq, time.Now())
	if err != nil {
		writeServiceError(w, logger, "create task", err)
		return
	}
	s.hub.Notify(topicTasks)
	httputil.WriteJSONResponse(w, http.StatusCreated, toTaskResponse(task))
	logger.Info("standalone task created")
}

func (s *Server) CompleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("complete task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	var req CompleteTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.UserID == uuid.Nil {
		logger.Error("complete task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	next, err := s.taskService.Complete(ctx, id, req.UserID, time.Now())
	if err != nil {
		writeServiceError(w, logger, "complete task", err)
		return
	}
	s.hub.Notify(topicTasks)
	var nextResp *taskResponse
	if next != nil {
		n := toTaskResponse(next)
		nextResp = &n
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"next": nextResp})
	logger.Info("task completed")
}

func (s *Server) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("uncomplete task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.taskService.Uncomplete(ctx, id); err != nil {
		writeServiceError(w, logger, "uncomplete task", err)
		return
	}
	s.hub.Notify(topicTasks)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("task uncompleted")
}

func (s *Server) PostponeTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("postpone task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	var req PostponeTaskRequest
	defer r.Body.Close()
	// An empty body means "one day later".
	_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	var newDate *time.Time
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			logger.Error("postpone task error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		newDate = &date
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	task, err := s.taskService.Postpone(ctx, id, newDate)
	if err != nil {
		writeServiceError(w, logger, "postpone task", err)
		return
	}
	s.hub.Notify(topicTasks)
	httputil.WriteJSONResponse(w, http.StatusOK, toTaskResponse(task))
	logger.Info("task postponed")
}

func (s *Server) ReassignTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("reassign task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	var req ReassignTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("reassign task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	err = s.taskService.Reassign(ctx, id, entity.Assignment{
		AssignedTo: req.AssignedTo,
		IsBoth:     req.IsBoth,
	})
	if err != nil {
		writeServiceError(w, logger, "reassign task", err)
		return
	}
	s.hub.Notify(topicTasks)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("task reassigned")
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("task deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.taskService.Remove(ctx, id); err != nil {
		writeServiceError(w, logger, "delete task", err)
		return
	}
	s.hub.Notify(topicTasks)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("standalone task deleted")
}

func (s *Server) RunHousekeeping(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	advanced, err := s.taskService.RunHousekeeping(ctx, time.Now())
	if err != nil {
		writeServiceError(w, logger, "run housekeeping", err)
		return
	}
	if advanced > 0 {
		s.hub.Notify(topicTasks)
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"advanced": advanced})
	logger.Info("housekeeping finished")
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/hearthhold/homekeep/internal/service"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/httputil"
)

type DailyEntryRequest struct {
	UserID        uuid.UUID `json:"user_id"`
	DayOfWeek     int       `json:"day_of_week"`
	Label         string    `json:"label"`
	IntervalWeeks int       `json:"interval_weeks"`
	ReferenceDate *string   `json:"reference_date"`
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	period := service.StatsPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = service.PeriodWeek
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	entries, err := s.historyService.Stats(ctx, period, time.Now())
	if err != nil {
		writeServiceError(w, logger, "get history", err)
		return
	}
	resp := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toHistoryEntryResponse(e))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("completion history provided")
}

func dailyEntryServiceRequest(req *DailyEntryRequest, logger *slog.Logger, w http.ResponseWriter) (*service.DailyEntryRequest, bool) {
	serviceReq := service.DailyEntryRequest{
		UserID:        req.UserID,
		DayOfWeek:     req.DayOfWeek,
		Label:         req.Label,
		IntervalWeeks: req.IntervalWeeks,
	}
	if req.ReferenceDate != nil {
		reference, err := parseDate(*req.ReferenceDate)
		if err != nil {
			logger.Error("daily entry error: invalid reference_date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "reference_date must be YYYY-MM-DD", nil)
			return nil, false
		}
		serviceReq.ReferenceDate = &reference
	}
	return &serviceReq, true
}

func (s *Server) CreateDailyEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req DailyEntryRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create daily entry error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq, ok := dailyEntryServiceRequest(&req, logger, w)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	entry, err := s.dailyService.Create(ctx, serviceReq)
	if err != nil {
		writeServiceError(w, logger, "create daily entry", err)
		return
	}
	s.hub.Notify(topicDailyEntries)
	httputil.WriteJSONResponse(w, http.StatusCreated, toDailyEntryResponse(entry))
	logger.Info("daily entry created")
}

// GetDailyEntries lists every entry, or only those applying on ?date=.
func (s *Server) GetDailyEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	var (
		entries []*entity.DailyScheduleEntry
		err     error
	)
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, parseErr := parseDate(dateParam)
		if parseErr != nil {
			logger.Error("get daily entries error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		entries, err = s.dailyService.ForDate(ctx, date)
	} else {
		entries, err = s.dailyService.List(ctx)
	}
	if err != nil {
		writeServiceError(w, logger, "get daily entries", err)
		return
	}
	resp := make([]dailyEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toDailyEntryResponse(e))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("daily entries provided")
}

func (s *Server) UpdateDailyEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update daily entry error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	var req DailyEntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update daily entry error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq, ok := dailyEntryServiceRequest(&req, logger, w)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	entry, err := s.dailyService.Update(ctx, id, serviceReq)
	if err != nil {
		writeServiceError(w, logger, "update daily entry", err)
		return
	}
	s.hub.Notify(topicDailyEntries)
	httputil.WriteJSONResponse(w, http.StatusOK, toDailyEntryResponse(entry))
	logger.Info("daily entry updated")
}

func (s *Server) DeleteDailyEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("daily entry deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err = s.dailyService.Delete(ctx, id); err != nil {
		writeServiceError(w, logger, "delete daily entry", err)
		return
	}
	s.hub.Notify(topicDailyEntries)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("daily entry deleted")
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CreateUserRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create user error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	user, err := s.userService.Create(ctx, req.Name)
	if err != nil {
		writeServiceError(w, logger, "create user", err)
		return
	}
	s.hub.Notify(topicUsers)
	httputil.WriteJSONResponse(w, http.StatusCreated, user)
	logger.Info("user created")
}

func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	users, err := s.userService.List(ctx)
	if err != nil {
		writeServiceError(w, logger, "list users", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, users)
	logger.Info("users provided")
}

func (s *Server) GetUpdates(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	seq, topics := s.hub.Snapshot()
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"seq":    seq,
		"topics": topics,
	})
	logger.Info("update marks provided")
}

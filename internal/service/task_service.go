package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/internal/repository"
	"github.com/hearthhold/homekeep/pkg/entity"
	"github.com/hearthhold/homekeep/pkg/recurrence"
)

// taskSentinels are passed through untouched so the API layer can translate
// them; anything else is wrapped as an internal repository failure.
var taskSentinels = []error{
	errorvalues.ErrTaskNotFound,
	errorvalues.ErrScheduleNotFound,
	errorvalues.ErrUserNotFound,
	errorvalues.ErrTaskCompleted,
	errorvalues.ErrTaskNotCompleted,
	errorvalues.ErrSuccessorOpen,
	errorvalues.ErrScheduleLinked,
	errorvalues.ErrDateBackward,
	errorvalues.ErrOpenOccurrenceExists,
}

func wrapTaskRepoErr(err error) error {
	for _, sentinel := range taskSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return errors.New("tasks repository error: " + err.Error())
}

type TaskService struct {
	repo repository.TasksRepositoryI
}

func NewTaskService(tasksRepo repository.TasksRepositoryI) *TaskService {
	if tasksRepo == nil {
		log.Fatal("provided nil tasksRepo")
	}
	return &TaskService{
		repo: tasksRepo,
	}
}

func (ts *TaskService) CreateStandalone(ctx context.Context, req *CreateTaskRequest, today time.Time) (*entity.TaskOccurrence, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if req.IsBoth && req.AssignedTo != nil {
		return nil, errorvalues.ErrAssignmentConflict
	}
	date := recurrence.DateOnly(today)
	if req.Date != nil {
		date = recurrence.DateOnly(*req.Date)
	}
	task := entity.TaskOccurrence{
		Title:        req.Title,
		Category:     req.Category,
		Date:         date,
		OriginalDate: date,
		AssignedTo:   req.AssignedTo,
		IsBoth:       req.IsBoth,
	}
	id, err := ts.repo.CreateStandalone(ctx, &task)
	if err != nil {
		return nil, wrapTaskRepoErr(err)
	}
	task.ID = id
	return &task, nil
}

func (ts *TaskService) Complete(ctx context.Context, id, userID uuid.UUID, at time.Time) (*entity.TaskOccurrence, error) {
	next, err := ts.repo.Complete(ctx, id, userID, at)
	if err != nil {
		return nil, wrapTaskRepoErr(err)
	}
	return next, nil
}

func (ts *TaskService) Uncomplete(ctx context.Context, id uuid.UUID) error {
	if err := ts.repo.Uncomplete(ctx, id); err != nil {
		return wrapTaskRepoErr(err)
	}
	return nil
}

func (ts *TaskService) Postpone(ctx context.Context, id uuid.UUID, newDate *time.Time) (*entity.TaskOccurrence, error) {
	task, err := ts.repo.Postpone(ctx, id, newDate)
	if err != nil {
		return nil, wrapTaskRepoErr(err)
	}
	return task, nil
}

func (ts *TaskService) Reassign(ctx context.Context, id uuid.UUID, assignment entity.Assignment) error {
	if assignment.IsBoth && assignment.AssignedTo != nil {
		return errorvalues.ErrAssignmentConflict
	}
	if err := ts.repo.Reassign(ctx, id, assignment); err != nil {
		return wrapTaskRepoErr(err)
	}
	return nil
}

func (ts *TaskService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := ts.repo.Delete(ctx, id); err != nil {
		return wrapTaskRepoErr(err)
	}
	return nil
}

func (ts *TaskService) RangeView(ctx context.Context, from, to, today time.Time) (*RangeView, error) {
	// Reconcile before reading so the view never shows an open occurrence
	// stuck in the past.
	if _, err := ts.RunHousekeeping(ctx, today); err != nil {
		return nil, err
	}
	from = recurrence.DateOnly(from)
	to = recurrence.DateOnly(to)
	tasks, err := ts.repo.ListRange(ctx, from, to)
	if err != nil {
		return nil, wrapTaskRepoErr(err)
	}
	open, err := ts.repo.OpenScheduled(ctx)
	if err != nil {
		return nil, wrapTaskRepoErr(err)
	}
	ghosts := make([]*entity.GhostOccurrence, 0)
	for _, o := range open {
		schedule := entity.Schedule{
			ID:           *o.Occurrence.ScheduleID,
			Title:        o.Occurrence.Title,
			Category:     o.Occurrence.Category,
			IntervalDays: o.IntervalDays,
			AssignedTo:   o.Occurrence.AssignedTo,
			IsBoth:       o.Occurrence.IsBoth,
		}
		ghost := recurrence.ProjectGhost(&schedule, &o.Occurrence)
		if ghost == nil {
			continue
		}
		if ghost.Date.Before(from) || ghost.Date.After(to) {
			continue
		}
		ghosts = append(ghosts, ghost)
	}
	return &RangeView{
		Tasks:  tasks,
		Ghosts: ghosts,
	}, nil
}

func (ts *TaskService) RunHousekeeping(ctx context.Context, today time.Time) (int, error) {
	advanced, err := ts.repo.AdvanceOverdue(ctx, recurrence.DateOnly(today))
	if err != nil {
		return 0, wrapTaskRepoErr(err)
	}
	return advanced, nil
}

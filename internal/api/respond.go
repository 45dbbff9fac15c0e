package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/hearthhold/homekeep/internal/error_values"
	"github.com/hearthhold/homekeep/pkg/httputil"
)

// dateLayout is the wire format for calendar dates. Other components key on
// it, so it never changes.
const dateLayout = "2006-01-02"

const requestTimeout = time.Second * 10

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// writeServiceError translates the core's typed outcomes into status codes:
// validation 400, not-found 404, illegal transitions 409, the rest 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation),
		errors.Is(err, errorvalues.ErrAssignmentConflict),
		errors.Is(err, errorvalues.ErrUnknownPeriod),
		errors.Is(err, errorvalues.ErrDateBackward):
		logger.Error(action+" error: invalid input", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrScheduleNotFound),
		errors.Is(err, errorvalues.ErrTaskNotFound),
		errors.Is(err, errorvalues.ErrIntervalTaskNotFound),
		errors.Is(err, errorvalues.ErrEntryNotFound),
		errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(action+" error: not found", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrScheduleLinked):
		// Schedule-linked occurrences are not directly addressable for
		// deletion; the caller sees not-found.
		logger.Error(action + " error: refused direct removal of schedule-linked occurrence")
		httputil.WriteErrorResponse(w, http.StatusNotFound, errorvalues.ErrTaskNotFound.Error(), nil)
	case errors.Is(err, errorvalues.ErrTaskCompleted),
		errors.Is(err, errorvalues.ErrTaskNotCompleted),
		errors.Is(err, errorvalues.ErrSuccessorOpen):
		logger.Error(action+" error: illegal transition", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusConflict, err.Error(), nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while handling "+action, nil)
	}
}

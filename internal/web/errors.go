package web

import (
	"errors"
	"net/http"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/UnknownOlympus/shiftbook/internal/report"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
)

// errBadForm reports a missing or non-numeric form field.
var errBadForm = errors.New("malformed form")

// failure maps an error to a status code and an error page message.
// Errors that are not recognised are logged and reported as 500.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status, key := http.StatusInternalServerError, "error.internal"

	switch {
	case errors.Is(err, repository.ErrEmployeeNotFound):
		status, key = http.StatusNotFound, "error.employee_not_found"
	case errors.Is(err, repository.ErrEmptyNickname):
		status, key = http.StatusBadRequest, "error.empty_nickname"
	case errors.Is(err, models.ErrInvalidClock):
		status, key = http.StatusBadRequest, "error.invalid_time"
	case errors.Is(err, calendar.ErrInvalidDay), errors.Is(err, calendar.ErrInvalidMonth):
		status, key = http.StatusBadRequest, "error.invalid_date"
	case errors.Is(err, errBadForm):
		status, key = http.StatusBadRequest, "error.bad_request"
	case errors.Is(err, repository.ErrShiftExists):
		status, key = http.StatusConflict, "error.shift_exists"
	case errors.Is(err, report.ErrNoShifts):
		status, key = http.StatusNotFound, "error.no_shifts"
	default:
		s.log.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	s.renderError(w, r, status, key)
}

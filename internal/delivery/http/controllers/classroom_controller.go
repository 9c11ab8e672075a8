package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"trainingadmin/internal/delivery/http/helpers"
	"trainingadmin/internal/domain"
)

const dateLayout = "2006-01-02"

// AvailableClassroomsSuccessResponse is the response envelope for GET /classrooms/available (200).
type AvailableClassroomsSuccessResponse struct {
	Data  []*domain.AvailableClassroom `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// ClassroomScheduleSuccessResponse is the response envelope for GET /classrooms/{classroomID}/schedule (200).
type ClassroomScheduleSuccessResponse struct {
	Data  []*domain.ResourceReservation `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type ClassroomController struct {
	Logger       *slog.Logger
	Availability domain.AvailabilityService
	Schedule     domain.ScheduleQueryService
}

func NewClassroomController(logger *slog.Logger, availability domain.AvailabilityService, schedule domain.ScheduleQueryService) *ClassroomController {
	return &ClassroomController{
		Logger:       logger,
		Availability: availability,
		Schedule:     schedule,
	}
}

// FindAvailable godoc
// @Summary List classrooms free in a time window
// @Description Returns classrooms with no conflicting reservation in the given window and at least min_capacity seats, ordered by capacity then name. Availability is evaluated against current reservations on every call.
// @Tags classrooms
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Window start (HH:MM)"
// @Param end_time query string true "Window end (HH:MM)"
// @Param min_capacity query int false "Minimum seat count"
// @Success 200 {object} controllers.AvailableClassroomsSuccessResponse "data contains available classrooms"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /classrooms/available [get]
func (c *ClassroomController) FindAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := time.Parse(dateLayout, q.Get("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	start, err := domain.ParseTimeOfDay(q.Get("start_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start_time must be HH:MM")
		return
	}
	end, err := domain.ParseTimeOfDay(q.Get("end_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_time must be HH:MM")
		return
	}
	minCapacity := 0
	if s := q.Get("min_capacity"); s != "" {
		minCapacity, err = strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "min_capacity must be an integer")
			return
		}
	}

	available, err := c.Availability.FindAvailable(r.Context(), date, start, end, minCapacity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not query availability")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, available)
}

// GetSchedule godoc
// @Summary Get a classroom's reservations for a date range
// @Description Returns all reservations for the classroom within [start_date, end_date], ordered by date then start time, for calendar rendering. An inverted range yields an empty list.
// @Tags classrooms
// @Produce json
// @Security BearerAuth
// @Param classroomID path string true "Classroom ID"
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} controllers.ClassroomScheduleSuccessResponse "data contains the reservations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /classrooms/{classroomID}/schedule [get]
func (c *ClassroomController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	classroomID := r.PathValue("classroomID")
	if classroomID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing classroomID")
		return
	}
	q := r.URL.Query()
	startDate, err := time.Parse(dateLayout, q.Get("start_date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, q.Get("end_date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	reservations, err := c.Schedule.GetSchedule(r.Context(), classroomID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not query schedule")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reservations)
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"mergingtonactivities/internal/delivery/http/helpers"
	"mergingtonactivities/internal/domain"
)

// Error details returned to clients. Tests and the landing page match on their wording.
const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student is already signed up for this activity"
	detailActivityFull     = "Activity is full"
	detailNotSignedUp      = "Student is not signed up for this activity"
	detailEmailRequired    = "Email is required"
	detailHistoryDisabled  = "Roster history is not enabled"
	detailInternal         = "Internal server error"
)

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// ListActivities godoc
// @Summary List all activities
// @Description Returns every activity keyed by name, with description, schedule, capacity and current participants.
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]domain.Activity
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := c.Service.ListActivities(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if activities == nil {
		activities = map[string]*domain.Activity{}
	}
	helpers.WriteJSON(w, http.StatusOK, activities)
}

// Signup godoc
// @Summary Sign a student up for an activity
// @Tags activities
// @Produce json
// @Param activityName path string true "Activity name (case sensitive, URL encoded)"
// @Param email query string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "already signed up, or activity full"
// @Failure 404 {object} helpers.ErrorResponse "activity not found"
// @Failure 422 {object} helpers.ErrorResponse "email missing"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{activityName}/signup [post]
func (c *ActivityController) Signup(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email, ok := helpers.RequireQuery(w, r, "email")
	if !ok {
		return
	}

	msg, err := c.Service.Signup(r.Context(), activityName, email)
	if err != nil {
		c.writeRosterError(w, r, err)
		return
	}
	helpers.WriteMessage(w, msg)
}

// Unregister godoc
// @Summary Remove a student from an activity
// @Tags activities
// @Produce json
// @Param activityName path string true "Activity name (case sensitive, URL encoded)"
// @Param email query string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "activity not found, or student not signed up"
// @Failure 422 {object} helpers.ErrorResponse "email missing"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{activityName}/unregister [delete]
func (c *ActivityController) Unregister(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email, ok := helpers.RequireQuery(w, r, "email")
	if !ok {
		return
	}

	msg, err := c.Service.Unregister(r.Context(), activityName, email)
	if err != nil {
		c.writeRosterError(w, r, err)
		return
	}
	helpers.WriteMessage(w, msg)
}

// History godoc
// @Summary Roster change history for an activity
// @Description Returns signup and unregister events in the order they happened. Requires the audit database.
// @Tags activities
// @Produce json
// @Param activityName path string true "Activity name (case sensitive, URL encoded)"
// @Success 200 {array} domain.RosterEvent
// @Failure 404 {object} helpers.ErrorResponse "activity not found"
// @Failure 503 {object} helpers.ErrorResponse "history not enabled"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{activityName}/history [get]
func (c *ActivityController) History(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.History(r.Context(), r.PathValue("activityName"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, detailActivityNotFound)
		case errors.Is(err, domain.ErrHistoryUnavailable):
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, detailHistoryDisabled)
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if events == nil {
		events = []*domain.RosterEvent{}
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

func (c *ActivityController) writeRosterError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, domain.ErrNotSignedUp):
		helpers.WriteJSONError(w, http.StatusNotFound, detailNotSignedUp)
	case errors.Is(err, domain.ErrAlreadySignedUp):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailAlreadySignedUp)
	case errors.Is(err, domain.ErrActivityFull):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailActivityFull)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, detailEmailRequired)
	default:
		c.internalError(w, r, err)
	}
}

func (c *ActivityController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, detailInternal)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"enrollhub/internal/service"
)

// TrainingScheduleHandler handles schedule CRUD endpoints.
type TrainingScheduleHandler struct {
	scheduleService service.TrainingScheduleService
}

// NewTrainingScheduleHandler creates a new schedule handler.
func NewTrainingScheduleHandler(scheduleService service.TrainingScheduleService) *TrainingScheduleHandler {
	return &TrainingScheduleHandler{scheduleService: scheduleService}
}

// CreateScheduleRequest represents a schedule creation request.
type CreateScheduleRequest struct {
	CourseID  *uint   `json:"course_id" validate:"required"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location  *string `json:"location" validate:"omitempty,max=255"`
}

// UpdateScheduleRequest is a sparse patch; the date-range invariant is checked
// against the merged pair in the service.
type UpdateScheduleRequest struct {
	CourseID  *uint   `json:"course_id"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Location  *string `json:"location" validate:"omitempty,max=255"`
}

// List godoc
// @Summary List all training schedules
// @Tags training-schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TrainingSchedule
// @Router /training-schedules [get]
func (h *TrainingScheduleHandler) List(c echo.Context) error {
	schedules, err := h.scheduleService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch training schedules")
	}
	return c.JSON(http.StatusOK, schedules)
}

// Create godoc
// @Summary Create a training schedule
// @Tags training-schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} model.TrainingSchedule
// @Failure 422 {object} map[string]interface{}
// @Router /training-schedules [post]
func (h *TrainingScheduleHandler) Create(c echo.Context) error {
	var req CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	schedule, err := h.scheduleService.Create(c.Request().Context(), service.CreateScheduleInput{
		CourseID:  *req.CourseID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Location:  req.Location,
	})
	if err != nil {
		return respondError(c, err, "Failed to create training schedule")
	}
	return c.JSON(http.StatusCreated, schedule)
}

// Get godoc
// @Summary Get a training schedule by id
// @Tags training-schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} model.TrainingSchedule
// @Failure 404 {object} map[string]interface{}
// @Router /training-schedules/{id} [get]
func (h *TrainingScheduleHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Training Schedule not found"})
	}
	schedule, err := h.scheduleService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch training schedule")
	}
	return c.JSON(http.StatusOK, schedule)
}

// Update godoc
// @Summary Update a training schedule
// @Tags training-schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} model.TrainingSchedule
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /training-schedules/{id} [put]
func (h *TrainingScheduleHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Training Schedule not found"})
	}
	var req UpdateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	schedule, err := h.scheduleService.Update(c.Request().Context(), id, service.UpdateScheduleInput{
		CourseID:  req.CourseID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Location:  req.Location,
	})
	if err != nil {
		return respondError(c, err, "Failed to update training schedule")
	}
	return c.JSON(http.StatusOK, schedule)
}

// Delete godoc
// @Summary Delete a training schedule
// @Tags training-schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /training-schedules/{id} [delete]
func (h *TrainingScheduleHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Training Schedule not found"})
	}
	if err := h.scheduleService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete training schedule")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Training Schedule deleted successfully"})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/service"
)

// EnrollmentHandler handles the opt-in/opt-out endpoints.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// OptInOutRequest sets a student's status for one schedule.
type OptInOutRequest struct {
	StudentID          uint   `json:"student_id" validate:"required"`
	TrainingScheduleID uint   `json:"training_schedule_id" validate:"required"`
	Status             string `json:"status" validate:"required,oneof=opt-in opt-out"`
}

// TrainingStatusItem is one row of the status list response.
type TrainingStatusItem struct {
	TrainingScheduleID uint                 `json:"training_schedule_id"`
	Status             model.TrainingStatus `json:"status"`
}

// OptInOut godoc
// @Summary Opt a student in or out of a schedule
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OptInOutRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /training-opt-in-out [post]
func (h *EnrollmentHandler) OptInOut(c echo.Context) error {
	var req OptInOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	record, err := h.enrollmentService.SetStatus(
		c.Request().Context(),
		req.StudentID,
		req.TrainingScheduleID,
		model.TrainingStatus(req.Status),
	)
	if err != nil {
		return respondError(c, err, "An error occurred while updating training status")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Student training status updated successfully",
		"data":    record,
	})
}

// StatusList godoc
// @Summary List a student's training statuses
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param student_id query int true "Student ID"
// @Success 200 {array} TrainingStatusItem
// @Failure 400 {object} map[string]interface{}
// @Router /student-training-statuses [get]
func (h *EnrollmentHandler) StatusList(c echo.Context) error {
	raw := c.QueryParam("student_id")
	if raw == "" {
		return respondError(c, apperrors.NewBadRequest("student_id is required"), "")
	}
	studentID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return respondError(c, apperrors.NewBadRequest("invalid student_id"), "")
	}

	records, err := h.enrollmentService.ListStatuses(c.Request().Context(), uint(studentID))
	if err != nil {
		return respondError(c, err, "Failed to retrieve training statuses")
	}

	items := make([]TrainingStatusItem, 0, len(records))
	for _, r := range records {
		items = append(items, TrainingStatusItem{
			TrainingScheduleID: r.TrainingScheduleID,
			Status:             r.Status,
		})
	}
	return c.JSON(http.StatusOK, items)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/service"
)

// CourseHandler handles course CRUD endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents a course creation request.
type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" validate:"required,min=1"`
}

// UpdateCourseRequest is a sparse patch; absent fields stay unchanged.
type UpdateCourseRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
}

// List godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Course
// @Router /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch courses.")
	}
	return c.JSON(http.StatusOK, courses)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCourseRequest true "Course payload"
// @Success 201 {object} model.Course
// @Failure 422 {object} map[string]interface{}
// @Router /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	course, err := h.courseService.Create(c.Request().Context(), service.CreateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    *req.Duration,
	})
	if err != nil {
		return respondError(c, err, "Course creation failed.")
	}
	return c.JSON(http.StatusCreated, course)
}

// Get godoc
// @Summary Get a course by id
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} map[string]interface{}
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
	}
	course, err := h.courseService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch course.")
	}
	return c.JSON(http.StatusOK, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body UpdateCourseRequest true "Fields to change"
// @Success 200 {object} model.Course
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
	}
	var req UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	// omitempty cannot see a supplied zero, so the bound is checked here.
	if req.Duration != nil && *req.Duration < 1 {
		return respondError(c, apperrors.NewFieldError("duration", "The duration field must be at least 1."), "")
	}

	course, err := h.courseService.Update(c.Request().Context(), id, service.UpdateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return respondError(c, err, "Update failed.")
	}
	return c.JSON(http.StatusOK, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
	}
	if err := h.courseService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Delete failed.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}

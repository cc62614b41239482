package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/service"
)

// StudentHandler handles the student directory endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudentRequest creates a user and its student profile together.
// Any role supplied by the caller is ignored; the user is always a student.
type CreateStudentRequest struct {
	Name                 string  `json:"name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required"`
	FirstName            string  `json:"first_name" validate:"required,max=255"`
	LastName             string  `json:"last_name" validate:"required,max=255"`
	Phone                *string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateStudentRequest is a sparse patch spanning the student and its user.
type UpdateStudentRequest struct {
	FirstName            *string `json:"first_name" validate:"omitempty,max=255"`
	LastName             *string `json:"last_name" validate:"omitempty,max=255"`
	Phone                *string `json:"phone" validate:"omitempty,max=20"`
	Name                 *string `json:"name" validate:"omitempty,max=255"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Password             *string `json:"password" validate:"omitempty,min=6"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

// CreateForUserRequest attaches a student profile to an existing user.
type CreateForUserRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=255"`
	LastName  string  `json:"last_name" validate:"required,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// List godoc
// @Summary List students with their users
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Filter by owning user id"
// @Success 200 {array} model.Student
// @Router /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	var userID *uint
	if raw := c.QueryParam("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return respondError(c, apperrors.NewBadRequest("invalid user_id"), "")
		}
		id := uint(parsed)
		userID = &id
	}

	students, err := h.studentService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to fetch students.")
	}
	return c.JSON(http.StatusOK, students)
}

// Create godoc
// @Summary Create a student and its user atomically
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStudentRequest true "Student payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	user, student, err := h.studentService.Create(c.Request().Context(), service.CreateStudentInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return respondError(c, err, "Failed to create user and student")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User and Student created successfully",
		"user":    user,
		"student": student,
	})
}

// Get godoc
// @Summary Get a student by id
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} model.Student
// @Failure 404 {object} map[string]interface{}
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
	}
	student, err := h.studentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch student.")
	}
	return c.JSON(http.StatusOK, student)
}

// Update godoc
// @Summary Update a student and its user
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body UpdateStudentRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
	}
	var req UpdateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	// eqfield does not span optional pointers, so confirmation is checked here.
	if req.Password != nil && *req.Password != "" {
		if req.PasswordConfirmation == nil || *req.PasswordConfirmation != *req.Password {
			return respondError(c, apperrors.NewFieldError("password", "The password field confirmation does not match."), "")
		}
	}

	student, err := h.studentService.Update(c.Request().Context(), id, service.UpdateStudentInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err, "Failed to update student and user")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Student and user updated successfully",
		"student": student,
	})
}

// GetByUserID godoc
// @Summary Get the student bound to a user
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} model.Student
// @Failure 404 {object} map[string]interface{}
// @Router /students/user/{userId} [get]
func (h *StudentHandler) GetByUserID(c echo.Context) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found for this user"})
	}
	student, err := h.studentService.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to fetch student by user ID.")
	}
	return c.JSON(http.StatusOK, student)
}

// CreateForUser godoc
// @Summary Create a student profile for an existing user
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body CreateForUserRequest true "Student profile"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /students/user/{userId} [post]
func (h *StudentHandler) CreateForUser(c echo.Context) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}
	var req CreateForUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	student, err := h.studentService.CreateForUser(c.Request().Context(), userID, service.CreateForUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return respondError(c, err, "Failed to create student for user")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Student created successfully for existing user",
		"student": student,
	})
}

// Delete godoc
// @Summary Delete a student and its user
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
	}
	if err := h.studentService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete student and user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student and user deleted successfully"})
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrsuite/hr-backend/internal/api/metrics"
	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/ports"
)

// UserHandler handles customer registration, user reads and the role-gated
// employee lifecycle surface.
type UserHandler struct {
	userService ports.UserService
	audit       AuditSink
}

func NewUserHandler(userService ports.UserService, audit AuditSink) *UserHandler {
	return &UserHandler{userService: userService, audit: audit}
}

// Register creates a customer account.
//
// @Summary      Register a customer
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// GetUser returns a single user by id.
//
// @Summary      Get a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "User id"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// GetUsers returns all users. Admin only.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  userListResponse
// @Router       /api/user [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.GetUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users, Count: len(users)})
}

// DeleteUser removes a user by id with no role guard. Admin only.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "User id"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditUserDelete,
		ActorID:   principal.UserID,
		SubjectID: id,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// CreateEmployee provisions a staff account. Admin only.
//
// @Summary      Create an employee
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeDetailRequest  true  "Employee details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/user/new-employee [post]
func (h *UserHandler) CreateEmployee(c echo.Context) error {
	var req employeeDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	created, err := h.userService.CreateEmployee(c.Request().Context(), toEmployeeDetail(req))
	if err != nil {
		metrics.EmployeeOpsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.EmployeeOpsTotal.WithLabelValues("create", "success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditEmployeeCreate,
		ActorID:   principal.UserID,
		SubjectID: created.ID,
		Detail:    created.Email,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, userResponse{User: created})
}

// UpdateEmployee overwrites an employee's details and role. Admin only.
//
// @Summary      Update an employee
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeDetailRequest  true  "Employee details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/employee [put]
func (h *UserHandler) UpdateEmployee(c echo.Context) error {
	var req employeeDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	updated, err := h.userService.UpdateEmployee(c.Request().Context(), toEmployeeDetail(req))
	if err != nil {
		metrics.EmployeeOpsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.EmployeeOpsTotal.WithLabelValues("update", "success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditEmployeeUpdate,
		ActorID:   principal.UserID,
		SubjectID: updated.ID,
		Detail:    string(updated.Role),
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, userResponse{User: updated})
}

// DeleteEmployee removes a staff account after the operator restates its
// stored details. Admin only.
//
// @Summary      Delete an employee
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeDetailRequest  true  "Employee details (confirmation)"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/employee [delete]
func (h *UserHandler) DeleteEmployee(c echo.Context) error {
	var req employeeDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteEmployee(c.Request().Context(), toEmployeeDetail(req)); err != nil {
		metrics.EmployeeOpsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.EmployeeOpsTotal.WithLabelValues("delete", "success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditEmployeeDelete,
		ActorID:   principal.UserID,
		SubjectID: req.ID,
		Detail:    req.Email,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListEmployees returns all employee-role users. Admin only.
//
// @Summary      List employees
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  userListResponse
// @Router       /api/user/employee [get]
func (h *UserHandler) ListEmployees(c echo.Context) error {
	employees, err := h.userService.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: employees, Count: len(employees)})
}

// toEmployeeDetail maps the HTTP request to the service DTO.
func toEmployeeDetail(r employeeDetailRequest) ports.EmployeeDetail {
	return ports.EmployeeDetail{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
	}
}

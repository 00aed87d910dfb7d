package handlers

import (
	"log/slog"
	"net/http"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests for the user directory.
type userHandler struct {
	userService       portssvc.UserSvcFacade
	departmentService portssvc.DepartmentSvcFacade
}

// registerUserRoutes registers directory routes. Writes are admin-only.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, departmentService portssvc.DepartmentSvcFacade) {
	h := &userHandler{userService: userService, departmentService: departmentService}

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/me", h.getCurrentUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
	}

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:id", h.getDepartment)
		departments.PUT("/:id/manager", h.setDepartmentManager)
	}
}

// createUser godoc
// @Summary Create a user
// @Description Creates a directory user with hashed credentials; roles are resolved against the department (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} map[string]string "Email already exists"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates profile, department, roles, or the former-employee flag (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("User updated", slog.String("updated_user_id", user.UserID))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createDepartment godoc
// @Summary Create a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments [post]
func (h *userHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Department created", slog.String("department_id", dept.DepartmentID))
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(dept))
}

// listDepartments godoc
// @Summary List departments
// @Tags departments
// @Produce  json
// @Success 200 {array} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments [get]
func (h *userHandler) listDepartments(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	departments, err := h.departmentService.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponses(departments))
}

// getDepartment godoc
// @Summary Get a department
// @Tags departments
// @Produce  json
// @Param   id path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{id} [get]
func (h *userHandler) getDepartment(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	dept, err := h.departmentService.GetDepartmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// setDepartmentManager godoc
// @Summary Designate a department manager
// @Description Points a department at the user who approves its first-level submissions (admin only)
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   id path string true "Department ID"
// @Param   manager body dto.SetDepartmentManagerRequest true "Manager user ID"
// @Success 200 {object} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments/{id}/manager [put]
func (h *userHandler) setDepartmentManager(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.SetDepartmentManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetDepartmentManager", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentService.SetDepartmentManager(c.Request.Context(), c.Param("id"), req.ManagerUserID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Department manager set",
		slog.String("department_id", dept.DepartmentID),
		slog.String("manager_user_id", req.ManagerUserID))
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

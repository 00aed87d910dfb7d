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

// budgetHandler handles HTTP requests for budget code administration.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
	userService   portssvc.UserSvcFacade
}

// registerBudgetRoutes registers budget code routes. Writes are admin-only.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, userService portssvc.UserSvcFacade) {
	h := &budgetHandler{budgetService: budgetService, userService: userService}

	budgets := rg.Group("/budget-codes")
	{
		budgets.POST("", h.createBudgetCode)
		budgets.GET("", h.listBudgetCodes)
		budgets.GET("/:id", h.getBudgetCode)
		budgets.PUT("/:id", h.updateBudgetCode)
	}
}

// createBudgetCode godoc
// @Summary Create a budget code
// @Description Creates a per-department, per-year budget pool in the home currency (admin only)
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetCodeRequest true "Budget code details"
// @Success 201 {object} dto.BudgetCodeResponse
// @Failure 403 {object} map[string]string "Insufficient privileges"
// @Security BearerAuth
// @Router /budget-codes [post]
func (h *budgetHandler) createBudgetCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.CreateBudgetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudgetCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code, err := h.budgetService.CreateBudgetCode(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Budget code created", slog.String("budget_code_id", code.BudgetCodeID))
	c.JSON(http.StatusCreated, dto.ToBudgetCodeResponse(code))
}

// listBudgetCodes godoc
// @Summary List budget codes
// @Description Lists budget codes, optionally filtered by department and restricted to active codes
// @Tags budgets
// @Produce  json
// @Param   departmentID query string false "Department filter"
// @Param   activeOnly query bool false "Only active codes"
// @Success 200 {array} dto.BudgetCodeResponse
// @Security BearerAuth
// @Router /budget-codes [get]
func (h *budgetHandler) listBudgetCodes(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	var departmentID *string
	if v := c.Query("departmentID"); v != "" {
		departmentID = &v
	}
	activeOnly := c.Query("activeOnly") == "true"

	codes, err := h.budgetService.ListBudgetCodes(c.Request.Context(), departmentID, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetCodeResponses(codes))
}

// getBudgetCode godoc
// @Summary Get a budget code
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget code ID"
// @Success 200 {object} dto.BudgetCodeResponse
// @Failure 404 {object} map[string]string "Budget code not found"
// @Security BearerAuth
// @Router /budget-codes/{id} [get]
func (h *budgetHandler) getBudgetCode(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	code, err := h.budgetService.GetBudgetCodeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetCodeResponse(code))
}

// updateBudgetCode godoc
// @Summary Update a budget code
// @Description Updates a budget code's descriptive fields, allocation, or active flag (admin only)
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget code ID"
// @Param   budget body dto.UpdateBudgetCodeRequest true "Fields to update"
// @Success 200 {object} dto.BudgetCodeResponse
// @Failure 403 {object} map[string]string "Insufficient privileges"
// @Security BearerAuth
// @Router /budget-codes/{id} [put]
func (h *budgetHandler) updateBudgetCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.UpdateBudgetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudgetCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code, err := h.budgetService.UpdateBudgetCode(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Budget code updated", slog.String("budget_code_id", code.BudgetCodeID))
	c.JSON(http.StatusOK, dto.ToBudgetCodeResponse(code))
}

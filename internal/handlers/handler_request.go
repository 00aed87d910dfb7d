package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler handles HTTP requests for the purchase request workflow.
type requestHandler struct {
	requestService  portssvc.RequestSvcFacade
	approvalService portssvc.ApprovalSvcFacade
	stepService     portssvc.StepCatalogSvc
	historyService  portssvc.HistorySvc
}

// registerRequestRoutes registers the purchase request workflow routes.
func registerRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade, approvalService portssvc.ApprovalSvcFacade, stepService portssvc.StepCatalogSvc, historyService portssvc.HistorySvc) {
	h := &requestHandler{
		requestService:  requestService,
		approvalService: approvalService,
		stepService:     stepService,
		historyService:  historyService,
	}

	requests := rg.Group("/requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listMyRequests)
		requests.GET("/all", h.listAllRequests)
		requests.GET("/pending", h.listPendingApprovals)
		requests.GET("/search", h.searchRequests)
		requests.GET("/:id", h.getRequest)
		requests.PUT("/:id/resubmit", h.resubmitRequest)
		requests.POST("/:id/decision", h.processDecision)
		requests.POST("/:id/return", h.returnForEdit)
		requests.GET("/:id/approvals", h.listRequestApprovals)
		requests.GET("/:id/history", h.listRequestHistory)
	}

	rg.GET("/approval-steps", h.listApprovalSteps)
}

// createRequest godoc
// @Summary Submit a purchase request
// @Description Submits a new purchase request; it is classified to its entry approval step, or approved outright when the submitter's role allows
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateRequestRequest true "Request details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient budget or missing exchange rate"
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Purchase request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)),
		slog.Int("level", request.CurrentLevel))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

// listMyRequests godoc
// @Summary List own requests
// @Description Lists the requests created by the authenticated user, newest first
// @Tags requests
// @Produce  json
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listMyRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListMyRequests(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// listAllRequests godoc
// @Summary List all requests
// @Description Lists every request; restricted to privileged roles
// @Tags requests
// @Produce  json
// @Success 200 {array} dto.RequestResponse
// @Failure 403 {object} map[string]string "Insufficient privileges"
// @Security BearerAuth
// @Router /requests/all [get]
func (h *requestHandler) listAllRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListAllRequests(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// listPendingApprovals godoc
// @Summary List requests awaiting the caller's decision
// @Description Lists requests pending at the caller's approval steps, based on their roles and managed department
// @Tags requests
// @Produce  json
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /requests/pending [get]
func (h *requestHandler) listPendingApprovals(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListPendingApprovalsFor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// searchRequests godoc
// @Summary Search requests by item name
// @Description Finds requests containing items matching the given name fragment; unprivileged users only see their own
// @Tags requests
// @Produce  json
// @Param   item query string true "Item name fragment"
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /requests/search [get]
func (h *requestHandler) searchRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.SearchRequests(c.Request.Context(), userID, c.Query("item"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// getRequest godoc
// @Summary Get a request
// @Description Retrieves a request with its items; creators see their own, privileged roles see all
// @Tags requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} map[string]string "Not visible to caller"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// resubmitRequest godoc
// @Summary Resubmit a returned request
// @Description Replaces the items of a returned-for-edit request and runs it through classification again
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   request body dto.ResubmitRequestRequest true "Updated request details"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} map[string]string "Only the creator can resubmit"
// @Failure 409 {object} map[string]string "Request is not awaiting edits"
// @Security BearerAuth
// @Router /requests/{id}/resubmit [put]
func (h *requestHandler) resubmitRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ResubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResubmitRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.requestService.ResubmitRequest(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Purchase request resubmitted", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// processDecision godoc
// @Summary Decide on a pending request
// @Description Records an approve or reject decision at the request's current step; a final approval consumes budget
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} map[string]string "Caller cannot decide at this step"
// @Failure 409 {object} map[string]string "Request already decided"
// @Failure 422 {object} map[string]string "Insufficient budget"
// @Security BearerAuth
// @Router /requests/{id}/decision [post]
func (h *requestHandler) processDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.approvalService.ProcessDecision(c.Request.Context(), c.Param("id"), userID, req.Decision, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Decision processed",
		slog.String("request_id", request.RequestID),
		slog.String("decision", string(req.Decision)),
		slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// returnForEdit godoc
// @Summary Return a request to its creator
// @Description Sends a pending request back to its creator with comments instead of deciding it
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   body body dto.ReturnForEditRequest true "Comments"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} map[string]string "Caller cannot act at this step"
// @Security BearerAuth
// @Router /requests/{id}/return [post]
func (h *requestHandler) returnForEdit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ReturnForEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReturnForEdit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.approvalService.ReturnForEdit(c.Request.Context(), c.Param("id"), userID, req.Comments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Request returned for edit", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// listRequestApprovals godoc
// @Summary List a request's approval ledger
// @Description Retrieves the immutable decision ledger for a request
// @Tags requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {array} dto.ApprovalResponse
// @Security BearerAuth
// @Router /requests/{id}/approvals [get]
func (h *requestHandler) listRequestApprovals(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	approvals, err := h.requestService.GetRequestApprovals(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalResponses(approvals))
}

// listRequestHistory godoc
// @Summary List a request's audit trail
// @Description Retrieves the business audit trail for a request, oldest first
// @Tags requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {array} dto.HistoryEntryResponse
// @Security BearerAuth
// @Router /requests/{id}/history [get]
func (h *requestHandler) listRequestHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entries, err := h.historyService.ListHistory(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryEntryResponses(entries))
}

// listApprovalSteps godoc
// @Summary List approval step definitions
// @Description Lists the ordered approval steps and the role required at each
// @Tags requests
// @Produce  json
// @Success 200 {array} domain.ApprovalStep
// @Security BearerAuth
// @Router /approval-steps [get]
func (h *requestHandler) listApprovalSteps(c *gin.Context) {
	steps, err := h.stepService.ListSteps(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, steps)
}

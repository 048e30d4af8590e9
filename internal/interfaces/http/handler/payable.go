package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
)

// PayableHandler serves /payables
type PayableHandler struct {
	BaseHandler
	service PayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(service PayableService, paging Paging) *PayableHandler {
	return &PayableHandler{BaseHandler: BaseHandler{paging: paging}, service: service}
}

// RegisterRoutes mounts the payable routes. The advisor statement is open to
// any authenticated user; everything else is admin only.
func (h *PayableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/payables")
	g.GET("/advisor-statement", h.AdvisorStatement)

	admin := g.Group("", middleware.RequireAdminDepartment())
	admin.GET("/leads", h.Leads)
	admin.GET("/advisors", h.Advisors)
	admin.POST("", h.Create)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// Leads lists leads that still have an open payout
// @Summary      List leads with open payouts
// @Description  Leads that have a payout with a remaining payable or GST amount
// @Tags         payables
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appledger.LeadOptionResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/leads [get]
func (h *PayableHandler) Leads(c *gin.Context) {
	leads, err := h.service.LeadsWithOpenPayouts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Leads fetched successfully", leads)
}

// Advisors lists the payouts of a lead, one per advisor
// @Summary      List advisors of a lead
// @Description  Advisors holding a payout on the lead
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        leadId query string true "Lead ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appledger.AdvisorOptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/advisors [get]
func (h *PayableHandler) Advisors(c *gin.Context) {
	leadID, ok := h.queryID(c, "leadId")
	if !ok {
		return
	}
	advisors, err := h.service.AdvisorsForLead(c.Request.Context(), leadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Advisors fetched successfully", advisors)
}

// Create records a payment against a payout
// @Summary      Record payable
// @Description  Pay part of a payout bucket
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        request body appledger.CreatePayableInput true "Create payable request"
// @Success      201 {object} dto.Response{data=appledger.PayableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables [post]
func (h *PayableHandler) Create(c *gin.Context) {
	var req appledger.CreatePayableInput
	if !h.bindJSON(c, &req) {
		return
	}
	payable, err := h.service.Create(c.Request.Context(), middleware.GetActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Payable created successfully", payable)
}

// List returns a page of payables
// @Summary      List payables
// @Description  Retrieve a page of payables with lead and advisor details
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        advisorName query string false "Advisor name fragment"
// @Param        clientName query string false "Client name fragment"
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {object} dto.Response{data=[]appledger.PayableResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables [get]
func (h *PayableHandler) List(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.Limit = h.paging.resolve(filter.Page, filter.Limit)
	payables, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, "Payables fetched successfully", payables, total, filter.Page, filter.Limit)
}

// Get returns one payable
// @Summary      Get payable by ID
// @Description  Retrieve one payable with the total of its bucket
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID" format(uuid)
// @Success      200 {object} dto.Response{data=appledger.PayableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/{id} [get]
func (h *PayableHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	payable, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payable fetched successfully", payable)
}

// Update revises a payment
// @Summary      Update payable
// @Description  Revise a payment within its due snapshot
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID" format(uuid)
// @Param        request body appledger.UpdatePayableInput true "Update payable request"
// @Success      200 {object} dto.Response{data=appledger.PayableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/{id} [put]
func (h *PayableHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appledger.UpdatePayableInput
	if !h.bindJSON(c, &req) {
		return
	}
	payable, err := h.service.Update(c.Request.Context(), middleware.GetActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payable updated successfully", payable)
}

// Delete reverses a payment
// @Summary      Delete payable
// @Description  Reverse a payment back into its payout bucket
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/{id} [delete]
func (h *PayableHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payable deleted successfully", []any{})
}

// AdvisorStatement returns the calling advisor's payments and totals
// @Summary      Get advisor statement
// @Description  Payables of the calling advisor with Pending/Paid status and totals
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        paymentStatus query string false "Settlement status" Enums(Pending, Paid)
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {object} dto.Response{data=appledger.StatementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payables/advisor-statement [get]
func (h *PayableHandler) AdvisorStatement(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	advisorID, err := claims.AdvisorUUID()
	if err != nil {
		h.Error(c, dto.ErrCodeForbidden, "Session is not linked to a valid advisor")
		return
	}

	var filter appledger.StatementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	statement, err := h.service.AdvisorStatement(c.Request.Context(), advisorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Advisor statement fetched successfully", statement)
}

package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/infrastructure/export"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
)

// PayoutHandler serves /advisor-payouts
type PayoutHandler struct {
	BaseHandler
	service PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(service PayoutService, paging Paging) *PayoutHandler {
	return &PayoutHandler{BaseHandler: BaseHandler{paging: paging}, service: service}
}

// RegisterRoutes mounts the payout routes. All of them are admin only.
func (h *PayoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/advisor-payouts", middleware.RequireAdminDepartment())
	g.GET("/disbursed-unpaid-leads", h.DisbursedUnpaidLeads)
	g.GET("/export", h.Export)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// DisbursedUnpaidLeads lists disbursed leads whose payout is not final
// @Summary      List disbursed leads without a final payout
// @Description  Leads whose last feedback is Loan Disbursed and whose payout is not final
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appledger.LeadOptionResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts/disbursed-unpaid-leads [get]
func (h *PayoutHandler) DisbursedUnpaidLeads(c *gin.Context) {
	leads, err := h.service.DisbursedUnpaidLeads(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Disbursed leads fetched successfully", leads)
}

// Create opens a payout for an advisor on a lead
// @Summary      Create advisor payout
// @Description  Price a payout for an advisor on a lead
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Param        request body appledger.CreatePayoutInput true "Create payout request"
// @Success      201 {object} dto.Response{data=appledger.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts [post]
func (h *PayoutHandler) Create(c *gin.Context) {
	var req appledger.CreatePayoutInput
	if !h.bindJSON(c, &req) {
		return
	}
	payout, err := h.service.Create(c.Request.Context(), middleware.GetActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Advisor payout created successfully", payout)
}

// List returns a page of payouts
// @Summary      List advisor payouts
// @Description  Retrieve a page of payouts with lead and advisor details
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        advisorName query string false "Advisor name fragment"
// @Param        clientName query string false "Client name fragment"
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {object} dto.Response{data=[]appledger.PayoutResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.Limit = h.paging.resolve(filter.Page, filter.Limit)
	payouts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, "Advisor payouts fetched successfully", payouts, total, filter.Page, filter.Limit)
}

// Get returns one payout
// @Summary      Get advisor payout by ID
// @Description  Retrieve one payout
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} dto.Response{data=appledger.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts/{id} [get]
func (h *PayoutHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	payout, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Advisor payout fetched successfully", payout)
}

// Update re-prices a payout
// @Summary      Update advisor payout
// @Description  Re-price a payout; amounts already paid must still fit
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Param        request body appledger.UpdatePayoutInput true "Update payout request"
// @Success      200 {object} dto.Response{data=appledger.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts/{id} [put]
func (h *PayoutHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appledger.UpdatePayoutInput
	if !h.bindJSON(c, &req) {
		return
	}
	payout, err := h.service.Update(c.Request.Context(), middleware.GetActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Advisor payout updated successfully", payout)
}

// Delete removes a payout that has no payments
// @Summary      Delete advisor payout
// @Description  Delete a payout together with its payables
// @Tags         advisor-payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts/{id} [delete]
func (h *PayoutHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Advisor payout deleted successfully", []any{})
}

// Export downloads every payout matching the list filters as xlsx
// @Summary      Export advisor payouts
// @Description  Download every payout matching the filters as an xlsx workbook
// @Tags         advisor-payouts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        advisorName query string false "Advisor name fragment"
// @Param        clientName query string false "Client name fragment"
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /advisor-payouts/export [get]
func (h *PayoutHandler) Export(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	_, pageSize := h.paging.resolve(1, h.paging.MaxPageSize)
	rows, err := collectAll(c.Request.Context(), h.service.List, filter, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := sendWorkbook(c, "advisor-payouts", "Advisor Payouts", export.PayoutColumns, rows); err != nil {
		h.HandleError(c, err)
	}
}

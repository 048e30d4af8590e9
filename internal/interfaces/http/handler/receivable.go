package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
)

// ReceivableHandler serves /receivables
type ReceivableHandler struct {
	BaseHandler
	service ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(service ReceivableService, paging Paging) *ReceivableHandler {
	return &ReceivableHandler{BaseHandler: BaseHandler{paging: paging}, service: service}
}

// RegisterRoutes mounts the receivable routes, admin only
func (h *ReceivableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/receivables", middleware.RequireAdminDepartment())
	g.GET("/leads", h.Leads)
	g.GET("/invoice-master", h.InvoiceMaster)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Leads lists leads with an invoice master that still has money open
// @Summary      List leads with open invoices
// @Description  Leads whose invoice master still has a remaining amount
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appledger.LeadOptionResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/leads [get]
func (h *ReceivableHandler) Leads(c *gin.Context) {
	leads, err := h.service.LeadsWithOpenInvoices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Leads fetched successfully", leads)
}

// InvoiceMaster returns the invoice master of a lead
// @Summary      Get invoice master of a lead
// @Description  Totals and remaining amounts across the invoices of a lead
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        leadId query string true "Lead ID" format(uuid)
// @Success      200 {object} dto.Response{data=appledger.InvoiceMasterResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/invoice-master [get]
func (h *ReceivableHandler) InvoiceMaster(c *gin.Context) {
	leadID, ok := h.queryID(c, "leadId")
	if !ok {
		return
	}
	master, err := h.service.InvoiceMasterByLead(c.Request.Context(), leadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Invoice master fetched successfully", master)
}

// Create godoc
// @Summary      Record receivable
// @Description  Record a receipt against an invoice master bucket
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        request body appledger.CreateReceivableInput true "Create receivable request"
// @Success      201 {object} dto.Response{data=appledger.ReceivableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables [post]
func (h *ReceivableHandler) Create(c *gin.Context) {
	var req appledger.CreateReceivableInput
	if !h.bindJSON(c, &req) {
		return
	}
	receivable, err := h.service.Create(c.Request.Context(), middleware.GetActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Receivable created successfully", receivable)
}

// List godoc
// @Summary      List receivables
// @Description  Retrieve a page of receivables with lead details
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        clientName query string false "Client name fragment"
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {object} dto.Response{data=[]appledger.ReceivableResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables [get]
func (h *ReceivableHandler) List(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.Limit = h.paging.resolve(filter.Page, filter.Limit)
	receivables, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, "Receivables fetched successfully", receivables, total, filter.Page, filter.Limit)
}

// Get godoc
// @Summary      Get receivable by ID
// @Description  Retrieve one receivable with the total of its bucket
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Receivable ID" format(uuid)
// @Success      200 {object} dto.Response{data=appledger.ReceivableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/{id} [get]
func (h *ReceivableHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	receivable, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Receivable fetched successfully", receivable)
}

// Update godoc
// @Summary      Update receivable
// @Description  Revise a receipt within its due snapshot
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Receivable ID" format(uuid)
// @Param        request body appledger.UpdateReceivableInput true "Update receivable request"
// @Success      200 {object} dto.Response{data=appledger.ReceivableResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/{id} [put]
func (h *ReceivableHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appledger.UpdateReceivableInput
	if !h.bindJSON(c, &req) {
		return
	}
	receivable, err := h.service.Update(c.Request.Context(), middleware.GetActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Receivable updated successfully", receivable)
}

// Delete godoc
// @Summary      Delete receivable
// @Description  Reverse a receipt back into its invoice master bucket
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Receivable ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/{id} [delete]
func (h *ReceivableHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Receivable deleted successfully", []any{})
}

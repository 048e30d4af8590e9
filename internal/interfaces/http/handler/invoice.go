package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/infrastructure/export"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler serves /invoices
type InvoiceHandler struct {
	BaseHandler
	service InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service InvoiceService, paging Paging) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: BaseHandler{paging: paging}, service: service}
}

// RegisterRoutes mounts the invoice routes, admin only
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/invoices", middleware.RequireAdminDepartment())
	g.GET("/disbursed-leads-without-invoice", h.DisbursedLeadsWithoutInvoice)
	g.GET("/export", h.Export)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// DisbursedLeadsWithoutInvoice lists disbursed leads not yet fully invoiced
// @Summary      List disbursed leads without a final invoice
// @Description  Leads whose last feedback is Loan Disbursed and whose invoice is not final
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appledger.LeadOptionResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/disbursed-leads-without-invoice [get]
func (h *InvoiceHandler) DisbursedLeadsWithoutInvoice(c *gin.Context) {
	leads, err := h.service.DisbursedLeadsWithoutInvoice(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Disbursed leads fetched successfully", leads)
}

// Create godoc
// @Summary      Create invoice
// @Description  Raise an invoice and add it to the lead invoice master
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body appledger.CreateInvoiceInput true "Create invoice request"
// @Success      201 {object} dto.Response{data=appledger.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req appledger.CreateInvoiceInput
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.service.Create(c.Request.Context(), middleware.GetActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Invoice created successfully", invoice)
}

// List godoc
// @Summary      List invoices
// @Description  Retrieve a page of invoices with lead details
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        productType query string false "Product type fragment, case-insensitive"
// @Param        clientName query string false "Client name fragment"
// @Param        fromDate query string false "Created on or after" format(date)
// @Param        toDate query string false "Created on or before" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(1000) maximum(5000)
// @Success      200 {object} dto.Response{data=[]appledger.InvoiceResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.Limit = h.paging.resolve(filter.Page, filter.Limit)
	invoices, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, "Invoices fetched successfully", invoices, total, filter.Page, filter.Limit)
}

// Get godoc
// @Summary      Get invoice by ID
// @Description  Retrieve one invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=appledger.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	invoice, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Invoice fetched successfully", invoice)
}

// Update godoc
// @Summary      Update invoice
// @Description  Re-price an invoice; receipts already recorded must still fit
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body appledger.UpdateInvoiceInput true "Update invoice request"
// @Success      200 {object} dto.Response{data=appledger.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appledger.UpdateInvoiceInput
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.service.Update(c.Request.Context(), middleware.GetActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Invoice updated successfully", invoice)
}

// Delete godoc
// @Summary      Delete invoice
// @Description  Remove an invoice from its master; an emptied master is deleted
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Invoice deleted successfully", []any{})
}

// Export downloads every invoice matching the list filters as xlsx
// @Summary      Export invoices
// @Description  Download every invoice matching the filters as an xlsx workbook
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productType query string false "Product type fragment, case-insensitive"
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
// @Router       /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
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
	if err := sendWorkbook(c, "invoices", "Invoices", export.InvoiceColumns, rows); err != nil {
		h.HandleError(c, err)
	}
}

package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beerich/beerich-api/internal/domain"
	"github.com/beerich/beerich-api/internal/model"
	"github.com/beerich/beerich-api/internal/service"
)

// InvoiceHandler handles HTTP requests for invoice operations
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice handles the POST /invoices endpoint
// @Summary Create a new invoice
// @Description Create a new income record, optionally with an attachment file
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Invoice title"
// @Param description formData string true "Invoice description (may be empty)"
// @Param amount formData string true "Invoice amount"
// @Param attachment formData file false "Attachment file"
// @Success 201 {object} model.InvoiceResponse "Invoice created successfully"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	values, err := parseForm(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	data, err := model.ParseInvoiceForm(values)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	// An uploaded file part takes precedence over the attachment form field.
	if file, header, ferr := c.Request.FormFile("attachment"); ferr == nil {
		defer file.Close()
		name, serr := h.invoiceService.SaveAttachmentFile(c.Request.Context(), header.Filename, file)
		if serr != nil {
			respondInternalServerError(c, ErrFileUpload)
			return
		}
		data.Attachment = &name
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), userID, data)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondCreated(c, formatInvoiceResponse(invoice))
}

// GetInvoices handles the GET /invoices endpoint
// @Summary List invoices
// @Description Get one page of the user's invoices, newest first, with an optional title search
// @Tags invoices
// @Accept json
// @Produce json
// @Param q query string false "Title search string"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} model.InvoiceListResponse "Page of invoices"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, model.ErrorDetail{Field: "page", Message: err.Error()})
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), domain.InvoiceFilter{
		UserID: userID,
		Search: c.Query("q"),
		Page:   page,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, formatInvoiceListResponse(result))
}

// GetInvoiceSummary handles the GET /invoices/summary endpoint
// @Summary Income totals
// @Description Get aggregate income totals for the dashboard
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceSummaryResponse "Income totals"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/summary [get]
func (h *InvoiceHandler) GetInvoiceSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.invoiceService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, model.InvoiceSummaryResponse{
		TotalAmount:   fmt.Sprintf("%.2f", summary.TotalAmount),
		InvoiceCount:  summary.InvoiceCount,
		AverageAmount: fmt.Sprintf("%.2f", summary.AverageAmount),
	})
}

// GetInvoiceByID handles the GET /invoices/{invoiceId} endpoint
// @Summary Get an invoice
// @Description Retrieve one of the user's invoices by ID
// @Tags invoices
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Success 200 {object} model.InvoiceResponse "Invoice details"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [get]
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, formatInvoiceResponse(invoice))
}

// UpdateInvoice handles the PUT /invoices/{invoiceId} endpoint
// @Summary Update an invoice
// @Description Update title, description and amount of an invoice; an uploaded file replaces the attachment
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Param title formData string true "Invoice title"
// @Param description formData string true "Invoice description (may be empty)"
// @Param amount formData string true "Invoice amount"
// @Param attachment formData file false "Replacement attachment file"
// @Success 200 {object} model.InvoiceResponse "Invoice updated successfully"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	values, err := parseForm(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	data, err := model.ParseInvoiceForm(values)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	if file, header, ferr := c.Request.FormFile("attachment"); ferr == nil {
		defer file.Close()
		name, serr := h.invoiceService.SaveAttachmentFile(c.Request.Context(), header.Filename, file)
		if serr != nil {
			respondInternalServerError(c, ErrFileUpload)
			return
		}
		data.Attachment = &name
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), invoiceID, userID, data)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, formatInvoiceResponse(invoice))
}

// DeleteInvoice handles the DELETE /invoices/{invoiceId} endpoint
// @Summary Delete an invoice
// @Description Delete one of the user's invoices and its attachment file
// @Tags invoices
// @Param invoiceId path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID, userID); err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondNoContent(c)
}

// UploadAttachment handles the POST /invoices/{invoiceId}/attachment endpoint
// @Summary Upload an attachment
// @Description Attach a file to an invoice, replacing any previous attachment
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Param attachment formData file true "Attachment file"
// @Success 200 {object} model.InvoiceResponse "Invoice with attachment"
// @Failure 400 {object} model.ErrorResponse "No file provided"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId}/attachment [post]
func (h *InvoiceHandler) UploadAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	// The invoice is fetched first so a missing or foreign-owned id fails
	// before any file is written.
	current, err := h.invoiceService.Get(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("attachment")
	if err != nil {
		respondBadRequest(c, "no attachment provided", model.ErrorDetail{Field: "attachment", Message: "attachment file is required"})
		return
	}
	defer file.Close()

	name, err := h.invoiceService.SaveAttachmentFile(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondInternalServerError(c, ErrFileUpload)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), invoiceID, userID, &domain.InvoiceData{
		Title:       current.Title,
		Description: current.Description,
		Amount:      current.Amount,
		Attachment:  &name,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, formatInvoiceResponse(invoice))
}

// RemoveAttachment handles the DELETE /invoices/{invoiceId}/attachment endpoint
// @Summary Remove an attachment
// @Description Delete the invoice's attachment file and clear the reference
// @Tags invoices
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Success 200 {object} model.InvoiceResponse "Invoice without attachment"
// @Failure 404 {object} model.ErrorResponse "Invoice or attachment not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId}/attachment [delete]
func (h *InvoiceHandler) RemoveAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	current, err := h.invoiceService.Get(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	if current.Attachment == nil {
		respondNotFound(c, "invoice has no attachment")
		return
	}

	invoice, err := h.invoiceService.RemoveAttachment(c.Request.Context(), invoiceID, userID, *current.Attachment)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	respondOK(c, formatInvoiceResponse(invoice))
}

// formatInvoiceResponse converts a domain invoice to its response shape
func formatInvoiceResponse(invoice *domain.Invoice) model.InvoiceResponse {
	response := model.InvoiceResponse{
		ID:           invoice.ID,
		Title:        invoice.Title,
		Description:  invoice.Description,
		Amount:       invoice.Amount,
		CurrencyCode: invoice.CurrencyCode,
		CreatedAt:    invoice.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    invoice.UpdatedAt.Format(time.RFC3339),
	}
	if invoice.Attachment != nil {
		response.Attachment = *invoice.Attachment
	}
	return response
}

// formatInvoiceListResponse converts a listing page to its response shape
func formatInvoiceListResponse(page *domain.InvoicePage) model.InvoiceListResponse {
	invoices := make([]model.InvoiceResponse, 0, len(page.Invoices))
	for i := range page.Invoices {
		invoices = append(invoices, formatInvoiceResponse(&page.Invoices[i]))
	}
	return model.InvoiceListResponse{
		Count:    page.Count,
		Invoices: invoices,
		Pagination: model.PaginationResponse{
			PageNumber:  page.PageNumber,
			PageSize:    domain.PageSize,
			HasPrevious: page.HasPrevious,
			HasNext:     page.HasNext,
		},
	}
}

package model

import (
	"math"
	"net/url"
	"strconv"

	"github.com/beerich/beerich-api/internal/domain"
)

// InvoiceResponse represents the response for a single invoice
type InvoiceResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Attachment   string  `json:"attachment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// InvoiceListResponse represents a paginated list of invoices
type InvoiceListResponse struct {
	Count      int                `json:"count"`
	Invoices   []InvoiceResponse  `json:"invoices"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata for a listing page
type PaginationResponse struct {
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// InvoiceSummaryResponse represents aggregate income totals
type InvoiceSummaryResponse struct {
	TotalAmount   string `json:"totalAmount"`
	InvoiceCount  int    `json:"invoiceCount"`
	AverageAmount string `json:"averageAmount"`
}

// ParseInvoiceForm validates raw form input and returns a clean invoice
// payload. Title and description must be present (description may be empty),
// and amount must parse to a finite number. The attachment field is kept only
// when present as a non-empty string; anything else is normalized to nil
// without raising an error. Validation happens before any store access.
func ParseInvoiceForm(values url.Values) (*domain.InvoiceData, error) {
	fields := map[string]string{}

	if !values.Has("title") {
		fields["title"] = "title is required"
	} else if values.Get("title") == "" {
		fields["title"] = "title must not be empty"
	}
	if !values.Has("description") {
		fields["description"] = "description is required"
	}

	var amount float64
	if !values.Has("amount") || values.Get("amount") == "" {
		fields["amount"] = "amount is required"
	} else {
		parsed, err := strconv.ParseFloat(values.Get("amount"), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			fields["amount"] = "amount must be a finite number"
		} else {
			amount = parsed
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	var attachment *string
	if name := values.Get("attachment"); name != "" {
		attachment = &name
	}

	return &domain.InvoiceData{
		Title:       values.Get("title"),
		Description: values.Get("description"),
		Amount:      amount,
		Attachment:  attachment,
	}, nil
}

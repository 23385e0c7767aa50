package domain

import (
	"time"
)

// DefaultCurrencyCode is assigned to every invoice at creation. The currency
// is not user-settable.
const DefaultCurrencyCode = "USD"

// PageSize is the fixed number of invoices returned per listing page.
const PageSize = 10

// Invoice represents a single income record owned by one user. Invoices are
// only ever addressable by the (ID, UserID) compound key, never by ID alone.
type Invoice struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	CurrencyCode string    `json:"currencyCode"`
	Attachment   *string   `json:"attachment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// InvoiceData is the validated payload for create and update operations.
// A nil Attachment on update leaves the stored value unchanged; clearing an
// attachment is a separate operation.
type InvoiceData struct {
	Title       string
	Description string
	Amount      float64
	Attachment  *string
}

// InvoiceFilter represents a listing query: owner scope, optional free-text
// title search (empty matches all), and a 1-based page number.
type InvoiceFilter struct {
	UserID string
	Search string
	Page   int
}

// InvoicePage is one page of a listing result. Count is the total number of
// invoices matching the filter, independent of pagination.
type InvoicePage struct {
	Invoices    []Invoice `json:"invoices"`
	Count       int       `json:"count"`
	PageNumber  int       `json:"pageNumber"`
	HasPrevious bool      `json:"hasPrevious"`
	HasNext     bool      `json:"hasNext"`
}

// InvoiceSummary holds the aggregate income totals shown on the dashboard.
type InvoiceSummary struct {
	TotalAmount   float64 `json:"totalAmount"`
	InvoiceCount  int     `json:"invoiceCount"`
	AverageAmount float64 `json:"averageAmount"`
}

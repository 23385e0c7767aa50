package repository

import (
	"context"

	"github.com/beerich/beerich-api/internal/domain"
)

// InvoiceRepository defines the record store contract for invoices. Every
// lookup and mutation is scoped by the (id, userID) compound key; a miss is
// reported as domain.ErrNotFound regardless of whether the record is absent
// or owned by a different user.
type InvoiceRepository interface {
	// CreateInvoice persists a new invoice owned by userID. The id and
	// timestamps are assigned by the store and the currency code is set to
	// the default.
	CreateInvoice(ctx context.Context, userID string, data *domain.InvoiceData) (*domain.Invoice, error)

	// GetInvoice retrieves an invoice by compound key.
	GetInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error)

	// UpdateInvoice replaces title, description and amount. The attachment
	// column is replaced only when data.Attachment is non-nil.
	UpdateInvoice(ctx context.Context, id, userID string, data *domain.InvoiceData) (*domain.Invoice, error)

	// ClearAttachment sets the attachment column to NULL.
	ClearAttachment(ctx context.Context, id, userID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and returns the deleted row so callers
	// can cascade attachment cleanup.
	DeleteInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error)

	// ListInvoices returns one page of invoices matching the filter together
	// with the total count of matches, computed independently of pagination.
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, int, error)

	// GetInvoiceSummary returns aggregate income totals for one user.
	GetInvoiceSummary(ctx context.Context, userID string) (*domain.InvoiceSummary, error)
}

package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/beerich/beerich-api/internal/cache"
	"github.com/beerich/beerich-api/internal/domain"
	"github.com/beerich/beerich-api/internal/repository"
	"github.com/beerich/beerich-api/internal/storage"
)

// InvoiceService defines the business operations on invoices. All operations
// are request-scoped and stateless apart from the read cache; ownership is
// enforced by passing the (id, userID) compound key down to the repository.
type InvoiceService interface {
	Create(ctx context.Context, userID string, data *domain.InvoiceData) (*domain.Invoice, error)
	Get(ctx context.Context, id, userID string) (*domain.Invoice, error)
	Update(ctx context.Context, id, userID string, data *domain.InvoiceData) (*domain.Invoice, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error)
	Summary(ctx context.Context, userID string) (*domain.InvoiceSummary, error)

	// SaveAttachmentFile stores an uploaded file under a unique name and
	// returns that name for use as an invoice attachment value.
	SaveAttachmentFile(ctx context.Context, originalName string, content io.Reader) (string, error)
	RemoveAttachment(ctx context.Context, id, userID, fileName string) (*domain.Invoice, error)
}

// InvoiceServiceImpl implements InvoiceService
type InvoiceServiceImpl struct {
	repository  repository.InvoiceRepository
	attachments storage.AttachmentStore
	readCache   *cache.Cache[*domain.Invoice]
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository, attachments storage.AttachmentStore, cacheSize int, cacheTTL time.Duration) InvoiceService {
	return &InvoiceServiceImpl{
		repository:  repo,
		attachments: attachments,
		readCache:   cache.New[*domain.Invoice](cacheSize, cacheTTL),
	}
}

func cacheKey(userID, id string) string {
	return userID + "/" + id
}

// Create persists a new invoice owned by userID. The payload is assumed to be
// validated already; the currency code is defaulted by the repository.
func (s *InvoiceServiceImpl) Create(ctx context.Context, userID string, data *domain.InvoiceData) (*domain.Invoice, error) {
	invoice, err := s.repository.CreateInvoice(ctx, userID, data)
	if err != nil {
		return nil, err
	}
	s.readCache.Set(cacheKey(userID, invoice.ID), invoice)
	return invoice, nil
}

// Get retrieves an invoice by compound key, serving repeated reads from the
// cache.
func (s *InvoiceServiceImpl) Get(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	if invoice, ok := s.readCache.Get(cacheKey(userID, id)); ok {
		return invoice, nil
	}

	invoice, err := s.repository.GetInvoice(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.readCache.Set(cacheKey(userID, id), invoice)
	return invoice, nil
}

// Update replaces title, description and amount of an owned invoice. When the
// payload carries a new attachment name, the previously referenced file is
// deleted from the attachment store afterwards so it cannot be orphaned.
func (s *InvoiceServiceImpl) Update(ctx context.Context, id, userID string, data *domain.InvoiceData) (*domain.Invoice, error) {
	var previous *string
	if data.Attachment != nil {
		current, err := s.repository.GetInvoice(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		previous = current.Attachment
	}

	invoice, err := s.repository.UpdateInvoice(ctx, id, userID, data)
	if err != nil {
		return nil, err
	}

	if previous != nil && data.Attachment != nil && *previous != *data.Attachment {
		s.deleteFile(ctx, *previous)
	}

	s.readCache.Invalidate(cacheKey(userID, id))
	return invoice, nil
}

// Delete removes an owned invoice. When the deleted record referenced an
// attachment, the file is deleted from the attachment store as a dependent
// side effect. The file deletion is best-effort: record deletion and file
// deletion are two non-transactional steps against two different resources,
// and a file-store failure leaves an orphaned file rather than rolling back
// the record delete.
func (s *InvoiceServiceImpl) Delete(ctx context.Context, id, userID string) error {
	invoice, err := s.repository.DeleteInvoice(ctx, id, userID)
	if err != nil {
		return err
	}

	if invoice.Attachment != nil {
		s.deleteFile(ctx, *invoice.Attachment)
	}

	s.readCache.Invalidate(cacheKey(userID, id))
	return nil
}

// List returns one page of invoices matching the filter. Page numbers below 1
// are normalized to 1. The previous/next flags are derived, not stored:
// a previous page exists iff the page number is above 1, and a next page
// exists iff the total count exceeds pageNumber*PageSize.
func (s *InvoiceServiceImpl) List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	invoices, count, err := s.repository.ListInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.InvoicePage{
		Invoices:    invoices,
		Count:       count,
		PageNumber:  filter.Page,
		HasPrevious: filter.Page > 1,
		HasNext:     count > filter.Page*domain.PageSize,
	}, nil
}

// Summary returns aggregate income totals for one user
func (s *InvoiceServiceImpl) Summary(ctx context.Context, userID string) (*domain.InvoiceSummary, error) {
	return s.repository.GetInvoiceSummary(ctx, userID)
}

// SaveAttachmentFile stores an uploaded file under a unique name derived from
// the original file name.
func (s *InvoiceServiceImpl) SaveAttachmentFile(ctx context.Context, originalName string, content io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(originalName))
	if err := s.attachments.Save(ctx, name, content); err != nil {
		return "", &domain.StoreError{Op: "save attachment", Err: err}
	}
	return name, nil
}

// RemoveAttachment deletes fileName from the attachment store and then clears
// the invoice's attachment column. The file deletion comes first: if it
// fails, the operation aborts and the record is left untouched, still
// pointing at the file.
func (s *InvoiceServiceImpl) RemoveAttachment(ctx context.Context, id, userID, fileName string) (*domain.Invoice, error) {
	if err := s.attachments.Delete(ctx, fileName); err != nil {
		return nil, &domain.StoreError{Op: "delete attachment", Err: err}
	}

	invoice, err := s.repository.ClearAttachment(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.readCache.Invalidate(cacheKey(userID, id))
	return invoice, nil
}

// deleteFile removes a no-longer-referenced file, logging instead of failing
// when the attachment store is unreachable.
func (s *InvoiceServiceImpl) deleteFile(ctx context.Context, fileName string) {
	if err := s.attachments.Delete(ctx, fileName); err != nil {
		log.Printf("Warning: failed to delete attachment %s: %v", fileName, err)
	}
}

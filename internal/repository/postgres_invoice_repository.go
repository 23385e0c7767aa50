package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/beerich/beerich-api/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

const invoiceColumns = `id, user_id, title, description, amount, currency_code, attachment, created_at, updated_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := row.Scan(
		&invoice.ID, &invoice.UserID, &invoice.Title, &invoice.Description,
		&invoice.Amount, &invoice.CurrencyCode, &invoice.Attachment,
		&invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoice saves a new invoice to the database
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, userID string, data *domain.InvoiceData) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, `
		INSERT INTO invoices (user_id, title, description, amount, currency_code, attachment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+invoiceColumns,
		userID, data.Title, data.Description, data.Amount, domain.DefaultCurrencyCode, data.Attachment,
	))
	if err != nil {
		return nil, &domain.StoreError{Op: "create invoice", Err: err}
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice by its compound (id, userID) key
func (r *PostgresInvoiceRepository) GetInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get invoice", Err: err}
	}
	return invoice, nil
}

// UpdateInvoice replaces title, description and amount for an owned invoice.
// The attachment column is only touched when data.Attachment is non-nil.
func (r *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, id, userID string, data *domain.InvoiceData) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, `
		UPDATE invoices
		SET title = $3, description = $4, amount = $5,
		    attachment = COALESCE($6, attachment),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+invoiceColumns,
		id, userID, data.Title, data.Description, data.Amount, data.Attachment,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "update invoice", Err: err}
	}
	return invoice, nil
}

// ClearAttachment sets the attachment column to NULL for an owned invoice
func (r *PostgresInvoiceRepository) ClearAttachment(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, `
		UPDATE invoices
		SET attachment = NULL, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+invoiceColumns,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "clear attachment", Err: err}
	}
	return invoice, nil
}

// DeleteInvoice removes an owned invoice and returns the deleted row
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, `
		DELETE FROM invoices
		WHERE id = $1 AND user_id = $2
		RETURNING `+invoiceColumns,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "delete invoice", Err: err}
	}
	return invoice, nil
}

// ListInvoices retrieves one page of invoices matching the filter plus the
// total count of matches. The count and the page are independent reads, so
// they are issued concurrently; minor skew between them under concurrent
// writes is acceptable. The secondary sort on id keeps pagination stable for
// invoices created at the same instant.
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * domain.PageSize
	pattern := "%" + filter.Search + "%"

	var (
		invoices []domain.Invoice
		count    int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.QueryRow(gctx, `
			SELECT COUNT(*)
			FROM invoices
			WHERE user_id = $1 AND title ILIKE $2
		`, filter.UserID, pattern).Scan(&count)
	})

	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
			SELECT `+invoiceColumns+`
			FROM invoices
			WHERE user_id = $1 AND title ILIKE $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3 OFFSET $4
		`, filter.UserID, pattern, domain.PageSize, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		invoices = []domain.Invoice{}
		for rows.Next() {
			var invoice domain.Invoice
			if err := rows.Scan(
				&invoice.ID, &invoice.UserID, &invoice.Title, &invoice.Description,
				&invoice.Amount, &invoice.CurrencyCode, &invoice.Attachment,
				&invoice.CreatedAt, &invoice.UpdatedAt,
			); err != nil {
				return err
			}
			invoices = append(invoices, invoice)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, &domain.StoreError{Op: "list invoices", Err: err}
	}

	return invoices, count, nil
}

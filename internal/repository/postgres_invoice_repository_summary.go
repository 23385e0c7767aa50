package repository

import (
	"context"

	"github.com/beerich/beerich-api/internal/domain"
)

// GetInvoiceSummary returns aggregate income totals for one user
func (r *PostgresInvoiceRepository) GetInvoiceSummary(ctx context.Context, userID string) (*domain.InvoiceSummary, error) {
	summary := &domain.InvoiceSummary{}
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0),
		       COUNT(*),
		       COALESCE(AVG(amount), 0)
		FROM invoices
		WHERE user_id = $1
	`, userID).Scan(&summary.TotalAmount, &summary.InvoiceCount, &summary.AverageAmount)
	if err != nil {
		return nil, &domain.StoreError{Op: "get invoice summary", Err: err}
	}
	return summary, nil
}

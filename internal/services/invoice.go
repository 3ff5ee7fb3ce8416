package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

// InvoicesPerPage is the listing page size.
const InvoicesPerPage = 6

// InvoiceService owns invoice reads and writes. The write methods implement
// the mutation pipeline's store; each touches exactly one row.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice rewrites customer, amount and status for one invoice.
// Id and date are never part of the update set.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id, customerID uuid.UUID, amountCents int64, status models.InvoiceStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]any{
		"customer_id":  customerID,
		"amount_cents": amountCents,
		"status":       status,
	})
	if res.Error != nil {
		return fmt.Errorf("update invoice %s: %w", id, res.Error)
	}
	return nil
}

// DeleteInvoice removes one invoice. A delete matching zero rows is not an
// error.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).Preload("Customer").First(&inv, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	return &inv, nil
}

// searchScope narrows invoices to rows matching the free-text query across
// customer name/email, amount, status and date. Comparisons are lowercased
// so the same query works on postgres and sqlite.
func (s *InvoiceService) searchScope(ctx context.Context, query string) *gorm.DB {
	dbq := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id")
	if query == "" {
		return dbq
	}
	like := "%" + escapeLike(query) + "%"
	return dbq.Where(
		s.db.Where(`lower(customers.name) LIKE lower(?) ESCAPE '\'`, like).
			Or(`lower(customers.email) LIKE lower(?) ESCAPE '\'`, like).
			Or(`CAST(invoices.amount_cents AS TEXT) LIKE ? ESCAPE '\'`, like).
			Or(`lower(invoices.status) LIKE lower(?) ESCAPE '\'`, like).
			Or(`CAST(invoices.date AS TEXT) LIKE ? ESCAPE '\'`, like),
	)
}

// FilteredInvoices returns one page of invoices matching query, most recent
// first. page is 1-based; out-of-range pages return an empty slice.
func (s *InvoiceService) FilteredInvoices(ctx context.Context, query string, page int) ([]models.Invoice, error) {
	if page < 1 {
		page = 1
	}
	var invs []models.Invoice
	err := s.searchScope(ctx, query).
		Preload("Customer").
		Order("invoices.date DESC, invoices.created_at DESC").
		Limit(InvoicesPerPage).
		Offset((page - 1) * InvoicesPerPage).
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invs, nil
}

// FilteredPages returns how many listing pages the query spans.
func (s *InvoiceService) FilteredPages(ctx context.Context, query string) (int, error) {
	var total int64
	if err := s.searchScope(ctx, query).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	pages := int((total + InvoicesPerPage - 1) / InvoicesPerPage)
	return pages, nil
}

// LatestInvoices returns the five most recent invoices with their customers,
// for the overview page.
func (s *InvoiceService) LatestInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invs []models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("date DESC, created_at DESC").
		Limit(5).
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("latest invoices: %w", err)
	}
	return invs, nil
}

// escapeLike backslash-escapes LIKE metacharacters so user input always
// matches literally. Pairs with the ESCAPE '\' clause in searchScope.
func escapeLike(q string) string {
	out := make([]rune, 0, len(q))
	for _, r := range q {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

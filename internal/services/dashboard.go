package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

// CardData feeds the overview page's summary cards.
type CardData struct {
	InvoiceCount  int64 `json:"invoice_count"`
	CustomerCount int64 `json:"customer_count"`
	PaidCents     int64 `json:"paid_cents"`
	PendingCents  int64 `json:"pending_cents"`
}

// DashboardService answers the overview page's aggregate queries.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Cards computes invoice/customer counts and the paid/pending totals in one
// pass over invoices plus a customer count.
func (s *DashboardService) Cards(ctx context.Context) (CardData, error) {
	var data CardData
	row := struct {
		Count   int64
		Paid    int64
		Pending int64
	}{}
	err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Select(
			"COUNT(*) AS count, " +
				"COALESCE(SUM(CASE WHEN status = 'paid' THEN amount_cents ELSE 0 END), 0) AS paid, " +
				"COALESCE(SUM(CASE WHEN status = 'pending' THEN amount_cents ELSE 0 END), 0) AS pending",
		).
		Scan(&row).Error
	if err != nil {
		return data, fmt.Errorf("invoice totals: %w", err)
	}
	data.InvoiceCount, data.PaidCents, data.PendingCents = row.Count, row.Paid, row.Pending

	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Count(&data.CustomerCount).Error; err != nil {
		return data, fmt.Errorf("customer count: %w", err)
	}
	return data, nil
}

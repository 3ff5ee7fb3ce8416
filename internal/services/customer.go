package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

// CustomerService answers customer reads: the invoice form's select options
// and the customers page.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// Customers lists all customers ordered by name.
func (s *CustomerService) Customers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// FilteredCustomers lists customers whose name or email matches the query.
func (s *CustomerService) FilteredCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	dbq := s.db.WithContext(ctx).Order("name ASC")
	if query != "" {
		like := "%" + escapeLike(query) + "%"
		dbq = dbq.Where("lower(name) LIKE lower(?) OR lower(email) LIKE lower(?)", like, like)
	}
	var customers []models.Customer
	if err := dbq.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

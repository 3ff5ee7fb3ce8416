package db

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

// Seed loads a demo account plus a few customers and invoices so a fresh
// database has something to show. Idempotent: existing rows (matched by
// email / customer+date) are left alone.
func Seed(db *gorm.DB) error {
	if err := seedUser(db); err != nil {
		return err
	}
	customers, err := seedCustomers(db)
	if err != nil {
		return err
	}
	return seedInvoices(db, customers)
}

func seedUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "user@example.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{Name: "Demo User", Email: "user@example.com", Password: string(hash)}).Error
}

func seedCustomers(db *gorm.DB) ([]models.Customer, error) {
	demo := []models.Customer{
		{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}
	out := make([]models.Customer, 0, len(demo))
	for _, c := range demo {
		var existing models.Customer
		err := db.Where("email = ?", c.Email).First(&existing).Error
		if err == nil {
			out = append(out, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := db.Create(&c).Error; err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func seedInvoices(db *gorm.DB, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	demo := []struct {
		customer int
		cents    int64
		status   models.InvoiceStatus
		date     string
	}{
		{0, 15795, models.InvoiceStatusPending, "2025-12-06"},
		{1, 20348, models.InvoiceStatusPending, "2025-11-14"},
		{4, 3040, models.InvoiceStatusPaid, "2025-10-29"},
		{3, 44800, models.InvoiceStatusPaid, "2025-09-10"},
		{5, 34577, models.InvoiceStatusPending, "2025-08-05"},
		{2, 54246, models.InvoiceStatusPending, "2025-07-16"},
		{0, 66666, models.InvoiceStatusPending, "2025-06-27"},
		{3, 32545, models.InvoiceStatusPaid, "2025-06-09"},
		{4, 1250, models.InvoiceStatusPaid, "2025-06-17"},
		{5, 8546, models.InvoiceStatusPaid, "2025-06-07"},
		{1, 500, models.InvoiceStatusPaid, "2025-08-19"},
		{5, 8945, models.InvoiceStatusPaid, "2025-06-03"},
		{2, 1000, models.InvoiceStatusPaid, "2025-06-05"},
	}
	for _, d := range demo {
		c := customers[d.customer%len(customers)]
		var count int64
		err := db.Model(&models.Invoice{}).
			Where("customer_id = ? AND date = ? AND amount_cents = ?", c.ID, d.date, d.cents).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		inv := models.Invoice{CustomerID: c.ID, AmountCents: d.cents, Status: d.status, Date: d.date}
		if err := db.Create(&inv).Error; err != nil {
			return err
		}
	}
	return nil
}

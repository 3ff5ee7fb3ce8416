package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is a billed amount owed by a customer. Amounts are stored in cents
// so currency math stays integral; Date is the creation date in YYYY-MM-DD
// form, fixed at create time.
type Invoice struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID     `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer    *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	AmountCents int64         `gorm:"not null" json:"amount_cents"`
	Status      InvoiceStatus `gorm:"size:20;not null" json:"status"`
	Date        string        `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Invoice) IsPaid() bool { return i.Status == InvoiceStatusPaid }

// Amount returns the amount in major currency units.
func (i *Invoice) Amount() float64 { return float64(i.AmountCents) / 100 }

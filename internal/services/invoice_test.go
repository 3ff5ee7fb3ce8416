package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name, email string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, Email: email}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID uuid.UUID, cents int64, status models.InvoiceStatus, date string) models.Invoice {
	t.Helper()
	inv := models.Invoice{CustomerID: customerID, AmountCents: cents, Status: status, Date: date}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func TestCreateInvoiceGeneratesID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	c := seedCustomer(t, db, "Amy Burns", "amy@burns.com")

	inv := &models.Invoice{CustomerID: c.ID, AmountCents: 4950, Status: models.InvoiceStatusPaid, Date: "2026-09-01"}
	if err := svc.CreateInvoice(context.Background(), inv); err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.ID == uuid.Nil {
		t.Fatal("id not generated")
	}
	got, err := svc.GetInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AmountCents != 4950 || got.Status != models.InvoiceStatusPaid || got.Date != "2026-09-01" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Customer == nil || got.Customer.Name != "Amy Burns" {
		t.Fatalf("customer not preloaded: %+v", got.Customer)
	}
}

func TestUpdateInvoiceLeavesIDAndDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	c1 := seedCustomer(t, db, "Lee Robinson", "lee@robinson.com")
	c2 := seedCustomer(t, db, "Michael Novotny", "michael@novotny.com")
	inv := seedInvoice(t, db, c1.ID, 1500, models.InvoiceStatusPending, "2026-01-15")

	err := svc.UpdateInvoice(context.Background(), inv.ID, c2.ID, 66600, models.InvoiceStatusPaid)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.GetInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerID != c2.ID || got.AmountCents != 66600 || got.Status != models.InvoiceStatusPaid {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.ID != inv.ID || got.Date != "2026-01-15" {
		t.Fatalf("id or date changed: %+v", got)
	}
}

func TestDeleteInvoiceMissingIDIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	if err := svc.DeleteInvoice(context.Background(), uuid.New()); err != nil {
		t.Fatalf("delete of missing id should be a no-op, got %v", err)
	}
}

func TestDeleteInvoiceRemovesRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	c := seedCustomer(t, db, "Evil Rabbit", "evil@rabbit.com")
	inv := seedInvoice(t, db, c.ID, 100, models.InvoiceStatusPending, "2026-02-02")

	if err := svc.DeleteInvoice(context.Background(), inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetInvoice(context.Background(), inv.ID); err == nil {
		t.Fatal("invoice still present after delete")
	}
}

func TestFilteredInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	lee := seedCustomer(t, db, "Lee Robinson", "lee@robinson.com")
	amy := seedCustomer(t, db, "Amy Burns", "amy@burns.com")
	seedInvoice(t, db, lee.ID, 1000, models.InvoiceStatusPaid, "2026-03-01")
	seedInvoice(t, db, lee.ID, 2000, models.InvoiceStatusPending, "2026-03-02")
	seedInvoice(t, db, amy.ID, 3000, models.InvoiceStatusPaid, "2026-03-03")

	byName, err := svc.FilteredInvoices(context.Background(), "lee", 1)
	if err != nil {
		t.Fatalf("search by name: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("expected 2 lee invoices, got %d", len(byName))
	}

	byStatus, err := svc.FilteredInvoices(context.Background(), "pending", 1)
	if err != nil {
		t.Fatalf("search by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].AmountCents != 2000 {
		t.Fatalf("unexpected status search result: %+v", byStatus)
	}

	all, err := svc.FilteredInvoices(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(all))
	}
	// most recent date first
	if all[0].Date != "2026-03-03" {
		t.Fatalf("expected newest first, got %s", all[0].Date)
	}
}

func TestFilteredInvoicesLiteralMetacharacters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	underscore := seedCustomer(t, db, "Delba de Oliveira", "delba_o@example.com")
	other := seedCustomer(t, db, "Balazs Orban", "delbaxo@example.com")
	seedInvoice(t, db, underscore.ID, 1000, models.InvoiceStatusPaid, "2026-04-01")
	seedInvoice(t, db, other.ID, 2000, models.InvoiceStatusPaid, "2026-04-02")

	// _ in the query matches only a literal underscore, not any character
	got, err := svc.FilteredInvoices(context.Background(), "delba_o", 1)
	if err != nil {
		t.Fatalf("search with underscore: %v", err)
	}
	if len(got) != 1 || got[0].CustomerID != underscore.ID {
		t.Fatalf("expected only the underscore email to match, got %+v", got)
	}

	// % in the query is literal too, so nothing matches
	none, err := svc.FilteredInvoices(context.Background(), "delba%o", 1)
	if err != nil {
		t.Fatalf("search with percent: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("percent must not act as a wildcard, got %+v", none)
	}
}

func TestFilteredInvoicesPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	c := seedCustomer(t, db, "Delba de Oliveira", "delba@oliveira.com")
	for i := 0; i < InvoicesPerPage+2; i++ {
		date := time.Date(2026, 4, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		seedInvoice(t, db, c.ID, int64(100*(i+1)), models.InvoiceStatusPending, date)
	}

	page1, err := svc.FilteredInvoices(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != InvoicesPerPage {
		t.Fatalf("expected full page of %d, got %d", InvoicesPerPage, len(page1))
	}
	page2, err := svc.FilteredInvoices(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("expected 2 on page 2, got %d", len(page2))
	}

	pages, err := svc.FilteredPages(context.Background(), "")
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages, got %d", pages)
	}
}

func TestLatestInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	c := seedCustomer(t, db, "Balazs Orban", "balazs@orban.com")
	for i := 1; i <= 7; i++ {
		date := fmt.Sprintf("2026-07-%02d", i)
		seedInvoice(t, db, c.ID, int64(i*100), models.InvoiceStatusPaid, date)
	}

	latest, err := svc.LatestInvoices(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(latest) != 5 {
		t.Fatalf("expected 5 latest invoices, got %d", len(latest))
	}
	if latest[0].Date != "2026-07-07" || latest[4].Date != "2026-07-03" {
		t.Fatalf("unexpected window: first=%s last=%s", latest[0].Date, latest[4].Date)
	}
	if latest[0].Customer == nil {
		t.Fatal("customer not preloaded")
	}
}

func TestDashboardCards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(db)
	c := seedCustomer(t, db, "Hector Simpson", "hector@simpson.com")
	seedInvoice(t, db, c.ID, 1000, models.InvoiceStatusPaid, "2026-05-01")
	seedInvoice(t, db, c.ID, 2500, models.InvoiceStatusPaid, "2026-05-02")
	seedInvoice(t, db, c.ID, 700, models.InvoiceStatusPending, "2026-05-03")

	cards, err := svc.Cards(context.Background())
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if cards.InvoiceCount != 3 || cards.CustomerCount != 1 {
		t.Fatalf("unexpected counts: %+v", cards)
	}
	if cards.PaidCents != 3500 || cards.PendingCents != 700 {
		t.Fatalf("unexpected totals: %+v", cards)
	}
}

func TestCustomers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db)
	seedCustomer(t, db, "Steven Song", "steven@song.com")
	seedCustomer(t, db, "Amy Burns", "amy@burns.com")

	all, err := svc.Customers(context.Background())
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Amy Burns" {
		t.Fatalf("expected name-ordered customers, got %+v", all)
	}

	hits, err := svc.FilteredCustomers(context.Background(), "song")
	if err != nil {
		t.Fatalf("filtered: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Steven Song" {
		t.Fatalf("unexpected search result: %+v", hits)
	}
}

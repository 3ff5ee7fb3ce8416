package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
)

func TestSeedIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Customer{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := Seed(conn); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var users, customers, invoices int64
	conn.Model(&models.User{}).Count(&users)
	conn.Model(&models.Customer{}).Count(&customers)
	conn.Model(&models.Invoice{}).Count(&invoices)
	if users != 1 {
		t.Fatalf("expected 1 user, got %d", users)
	}
	if customers != 6 {
		t.Fatalf("expected 6 customers, got %d", customers)
	}
	if invoices != 13 {
		t.Fatalf("expected 13 invoices, got %d", invoices)
	}
}

func TestNormalizeDSN(t *testing.T) {
	cases := []struct{ in, want string }{
		{" postgres://u:p@h:5432/d?sslmode=disable ", "postgres://u:p@h:5432/d?sslmode=disable"},
		{`"postgres://u@h/d"`, "postgres://u@h/d"},
		{"host=h  user=u dbname=d", "host=h user=u dbname=d sslmode=disable"},
		{"host=h user=u dbname=d sslmode=require", "host=h user=u dbname=d sslmode=require"},
		{"", ""},
		{"gibberish", "gibberish"},
	}
	for _, tc := range cases {
		if got := NormalizeDSN(tc.in); got != tc.want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

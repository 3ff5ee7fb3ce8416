// Package actions implements the invoice mutation pipeline: validate form
// input, persist, invalidate the cached listing, redirect. Each mutation is
// a single storage round trip; failures come back as values, never panics.
package actions

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hlemaitre/invoice-dashboard/internal/models"
	"github.com/hlemaitre/invoice-dashboard/validation"
)

// ListingPath is the invoice listing route invalidated and redirected to
// after every successful mutation.
const ListingPath = "/dashboard/invoices"

// Field messages shown next to the form inputs.
const (
	msgCustomer = "Please select a customer."
	msgAmount   = "Please enter an amount greater than $0."
	msgStatus   = "Please select an invoice status."
)

// State is what a form gets back when a mutation cannot complete: messages
// keyed by field plus a human-readable summary. A zero State means nothing
// to report.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// ResultKind tags the outcome of a mutation.
type ResultKind int

const (
	// ResultOK: the mutation succeeded and the caller stays on the current
	// page (delete).
	ResultOK ResultKind = iota
	// ResultFailed: validation or storage failed; State describes it and the
	// form re-renders.
	ResultFailed
	// ResultRedirect: the mutation succeeded and the caller navigates to
	// Location (create, update).
	ResultRedirect
)

// Result is the explicit outcome of a mutation, consumed by the HTTP layer.
// Redirects are plain values here, not unwound control flow.
type Result struct {
	Kind     ResultKind
	State    State
	Location string
}

func failed(s State) Result    { return Result{Kind: ResultFailed, State: s} }
func redirect(p string) Result { return Result{Kind: ResultRedirect, Location: p} }

// InvoiceStore is the storage the pipeline writes through.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	UpdateInvoice(ctx context.Context, id, customerID uuid.UUID, amountCents int64, status models.InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// Invalidator marks a cached route stale after a successful write.
type Invalidator interface {
	Invalidate(path string)
}

// InvoiceActions runs the create/update/delete pipeline against a store and
// a listing cache. It holds no per-request state.
type InvoiceActions struct {
	store InvoiceStore
	cache Invalidator
}

func NewInvoiceActions(store InvoiceStore, cache Invalidator) *InvoiceActions {
	return &InvoiceActions{store: store, cache: cache}
}

// invoiceInput is a validated invoice form: customer reference, amount in
// major units, status literal.
type invoiceInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Status     models.InvoiceStatus
}

// AmountCents converts the validated major-unit amount to minor units
// exactly; "19.99" always becomes 1999.
func (in invoiceInput) AmountCents() int64 {
	return in.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// parseInvoiceForm validates the raw form fields. All failing fields report
// together; on any failure only the errors are meaningful.
func parseInvoiceForm(form url.Values) (invoiceInput, validation.Errors) {
	errs := validation.Errors{}
	var in invoiceInput
	if id, ok := validation.UUID("customerId", form.Get("customerId"), msgCustomer, errs); ok {
		in.CustomerID = id
	}
	if amt, ok := validation.PositiveAmount("amount", form.Get("amount"), msgAmount, errs); ok {
		in.Amount = amt
	}
	status := form.Get("status")
	if validation.OneOf("status", status, []string{string(models.InvoiceStatusPending), string(models.InvoiceStatusPaid)}, msgStatus, errs) {
		in.Status = models.InvoiceStatus(status)
	}
	return in, errs
}

// CreateInvoice validates form, inserts a new invoice with a server-side
// creation date, invalidates the listing and redirects to it. prev is the
// form's previous state, carried for signature parity with the form hook;
// the returned State is always built fresh.
func (a *InvoiceActions) CreateInvoice(ctx context.Context, _ State, form url.Values) Result {
	in, errs := parseInvoiceForm(form)
	if !errs.Empty() {
		return failed(State{Errors: errs, Message: "Missing Fields. Failed to Create Invoice."})
	}
	inv := &models.Invoice{
		CustomerID:  in.CustomerID,
		AmountCents: in.AmountCents(),
		Status:      in.Status,
		Date:        time.Now().Format("2006-01-02"),
	}
	if err := a.store.CreateInvoice(ctx, inv); err != nil {
		log.Printf("create invoice: %v", err)
		return failed(State{Message: "Dashboard Error: Failed to Create Invoice."})
	}
	a.cache.Invalidate(ListingPath)
	return redirect(ListingPath)
}

// UpdateInvoice validates form and rewrites customer, amount and status of
// the invoice with the given id. Id and date never change.
func (a *InvoiceActions) UpdateInvoice(ctx context.Context, id uuid.UUID, _ State, form url.Values) Result {
	in, errs := parseInvoiceForm(form)
	if !errs.Empty() {
		return failed(State{Errors: errs, Message: "Missing Fields. Failed to Update Invoice."})
	}
	if err := a.store.UpdateInvoice(ctx, id, in.CustomerID, in.AmountCents(), in.Status); err != nil {
		log.Printf("update invoice %s: %v", id, err)
		return failed(State{Message: "Database Error: Failed to Update Invoice."})
	}
	a.cache.Invalidate(ListingPath)
	return redirect(ListingPath)
}

// DeleteInvoice removes the invoice with the given id. Deleting an id that
// no longer exists is a no-op success. No redirect: the caller is already on
// the listing page.
func (a *InvoiceActions) DeleteInvoice(ctx context.Context, id uuid.UUID) Result {
	if err := a.store.DeleteInvoice(ctx, id); err != nil {
		log.Printf("delete invoice %s: %v", id, err)
		return failed(State{Message: "Database Error: Failed to Delete Invoice."})
	}
	a.cache.Invalidate(ListingPath)
	return Result{Kind: ResultOK}
}

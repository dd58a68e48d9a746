package screens

import (
	"context"
	"sync"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const invoicesPath = "/sales-invoices"

// SalesInvoice is the sales invoice screen. Line items accumulate on
// the screen, not in the form map; the running total is written back
// into the form so the amount validation covers it.
type SalesInvoice struct {
	Form *form.Controller
	List *form.ListController[model.SalesInvoice]

	deps Deps

	mu        sync.Mutex
	lines     []model.InvoiceLine
	customers []model.Customer
	items     []model.Item
}

// NewSalesInvoice builds the sales invoice screen.
func NewSalesInvoice(d Deps) *SalesInvoice {
	s := &SalesInvoice{deps: d}
	s.Form = form.NewController(form.Config{
		Validate:      s.validate,
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			customers, errno := d.Refdata.Customers(ctx)
			if errno != nil {
				return errno
			}
			items, errno := d.Refdata.Items(ctx)
			if errno != nil {
				return errno
			}
			s.mu.Lock()
			s.customers, s.items = customers, items
			s.mu.Unlock()
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.SalesInvoice](crudList(d, invoicesPath))
	return s
}

// Customers returns the customer dropdown list.
func (s *SalesInvoice) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers
}

// Items returns the item dropdown list.
func (s *SalesInvoice) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// AddLine appends a line and recalculates the invoice total. The line
// amount is always quantity times rate regardless of what the caller
// set.
func (s *SalesInvoice) AddLine(line model.InvoiceLine) {
	line.Amount = line.Quantity * line.Rate
	s.mu.Lock()
	s.lines = append(s.lines, line)
	total := 0.0
	for _, l := range s.lines {
		total += l.Amount
	}
	s.mu.Unlock()
	s.Form.SetField("total", total)
}

// RemoveLine drops the line at index and recalculates the total.
func (s *SalesInvoice) RemoveLine(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	total := 0.0
	for _, l := range s.lines {
		total += l.Amount
	}
	s.mu.Unlock()
	s.Form.SetField("total", total)
}

// Lines returns a copy of the accumulated lines.
func (s *SalesInvoice) Lines() []model.InvoiceLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InvoiceLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *SalesInvoice) validate(f validation.FormState) *validation.Result {
	result := s.deps.Engine.ValidateSalesForm(f)
	s.mu.Lock()
	empty := len(s.lines) == 0
	s.mu.Unlock()
	if empty {
		result.Fail("lines", s.deps.Locale.T(locale.KeyRequired))
	}
	return result
}

func (s *SalesInvoice) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	s.mu.Lock()
	lines := make([]model.InvoiceLine, len(s.lines))
	copy(lines, s.lines)
	s.mu.Unlock()

	payload := model.SalesInvoice{
		CustomerID: id64(f, "customer"),
		Date:       str(f, "date"),
		Lines:      lines,
		Total:      num(f, "total"),
		PaidAmount: num(f, "paid_amount"),
	}
	return upsert(ctx, s.deps, invoicesPath, f, payload)
}

// Close releases both controllers.
func (s *SalesInvoice) Close() {
	s.Form.Close()
	s.List.Close()
}

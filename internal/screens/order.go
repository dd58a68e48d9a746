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

const ordersPath = "/purchase-orders"

// PurchaseOrder is the purchase order screen. It shares the line item
// mechanics of the sales invoice but orders against a supplier.
type PurchaseOrder struct {
	Form *form.Controller
	List *form.ListController[model.PurchaseOrder]

	deps Deps

	mu        sync.Mutex
	lines     []model.InvoiceLine
	suppliers []model.Supplier
	items     []model.Item
}

// NewPurchaseOrder builds the purchase order screen.
func NewPurchaseOrder(d Deps) *PurchaseOrder {
	s := &PurchaseOrder{deps: d}
	s.Form = form.NewController(form.Config{
		Validate:      s.validate,
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			suppliers, errno := d.Refdata.Suppliers(ctx)
			if errno != nil {
				return errno
			}
			items, errno := d.Refdata.Items(ctx)
			if errno != nil {
				return errno
			}
			s.mu.Lock()
			s.suppliers, s.items = suppliers, items
			s.mu.Unlock()
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.PurchaseOrder](crudList(d, ordersPath))
	return s
}

// Suppliers returns the supplier dropdown list.
func (s *PurchaseOrder) Suppliers() []model.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppliers
}

// Items returns the item dropdown list.
func (s *PurchaseOrder) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// AddLine appends a line and recalculates the order total.
func (s *PurchaseOrder) AddLine(line model.InvoiceLine) {
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

// Lines returns a copy of the accumulated lines.
func (s *PurchaseOrder) Lines() []model.InvoiceLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InvoiceLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *PurchaseOrder) validate(f validation.FormState) *validation.Result {
	result := s.deps.Engine.ValidateForm(f, s.deps.Engine.PurchaseOrderRules())
	s.mu.Lock()
	empty := len(s.lines) == 0
	s.mu.Unlock()
	if empty {
		result.Fail("lines", s.deps.Locale.T(locale.KeyRequired))
	}
	return result
}

func (s *PurchaseOrder) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	s.mu.Lock()
	lines := make([]model.InvoiceLine, len(s.lines))
	copy(lines, s.lines)
	s.mu.Unlock()

	payload := model.PurchaseOrder{
		SupplierID: id64(f, "supplier"),
		Date:       str(f, "date"),
		Lines:      lines,
		Total:      num(f, "total"),
	}
	return upsert(ctx, s.deps, ordersPath, f, payload)
}

// Close releases both controllers.
func (s *PurchaseOrder) Close() {
	s.Form.Close()
	s.List.Close()
}

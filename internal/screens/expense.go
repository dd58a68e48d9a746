package screens

import (
	"bytes"
	"context"
	"sync"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/device"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const expensesPath = "/expenses"

// Expense is the expense recording screen. A receipt photo is optional;
// when one is attached the submit switches to multipart.
type Expense struct {
	Form *form.Controller
	List *form.ListController[model.Expense]

	deps   Deps
	picker device.ImagePicker

	mu      sync.Mutex
	types   []model.ExpenseType
	receipt *device.Image
}

// NewExpense builds the expense screen.
func NewExpense(d Deps, picker device.ImagePicker) *Expense {
	s := &Expense{deps: d, picker: picker}
	s.Form = form.NewController(form.Config{
		Validate: func(f validation.FormState) *validation.Result {
			return d.Engine.ValidateForm(f, d.Engine.ExpenseRules())
		},
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			types, errno := d.Refdata.ExpenseTypes(ctx)
			if errno != nil {
				return errno
			}
			s.mu.Lock()
			s.types = types
			s.mu.Unlock()
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.Expense](crudList(d, expensesPath))
	return s
}

// Types returns the expense type dropdown list.
func (s *Expense) Types() []model.ExpenseType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.types
}

// AttachReceipt runs the image picker. Cancellation leaves the current
// attachment untouched; a denied media permission is returned so the
// screen can alert.
func (s *Expense) AttachReceipt(ctx context.Context) *errors.Errno {
	img, errno := s.picker.Pick(ctx)
	if errno != nil {
		if errno.Is(errors.ErrCancelled) {
			return nil
		}
		return errno
	}
	s.mu.Lock()
	s.receipt = &img
	s.mu.Unlock()
	return nil
}

// ClearReceipt drops the attached receipt.
func (s *Expense) ClearReceipt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipt = nil
}

// HasReceipt reports whether a receipt is attached.
func (s *Expense) HasReceipt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt != nil
}

func (s *Expense) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	s.mu.Lock()
	receipt := s.receipt
	s.mu.Unlock()

	if receipt == nil {
		payload := model.Expense{
			Type:   str(f, "type"),
			Amount: num(f, "amount"),
			Date:   str(f, "date"),
			Note:   str(f, "note"),
		}
		return upsert(ctx, s.deps, expensesPath, f, payload)
	}

	mf := apiclient.NewForm().
		Field("type", str(f, "type")).
		Field("amount", str(f, "amount")).
		Field("date", str(f, "date")).
		Field("note", str(f, "note")).
		File("receipt", receipt.Name, bytes.NewReader(receipt.Content))
	return s.deps.API.PostForm(ctx, expensesPath, mf)
}

// Close releases both controllers.
func (s *Expense) Close() {
	s.Form.Close()
	s.List.Close()
}

package screens

import (
	"context"
	"sync"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const targetsPath = "/sales-targets"

// SalesTarget is the sales target screen, assigning a period target to
// a staff member.
type SalesTarget struct {
	Form *form.Controller
	List *form.ListController[model.SalesTarget]

	deps Deps

	mu    sync.Mutex
	staff []model.Staff
}

// NewSalesTarget builds the sales target screen.
func NewSalesTarget(d Deps) *SalesTarget {
	s := &SalesTarget{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: func(f validation.FormState) *validation.Result {
			return d.Engine.ValidateForm(f, d.Engine.SalesTargetRules())
		},
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			staff, errno := d.Refdata.Staff(ctx)
			if errno != nil {
				return errno
			}
			s.mu.Lock()
			s.staff = staff
			s.mu.Unlock()
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.SalesTarget](crudList(d, targetsPath))
	return s
}

// StaffMembers returns the staff dropdown list.
func (s *SalesTarget) StaffMembers() []model.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staff
}

func (s *SalesTarget) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.SalesTarget{
		StaffID:   id64(f, "staff"),
		PeriodKey: str(f, "period_key"),
		Amount:    num(f, "amount"),
	}
	return upsert(ctx, s.deps, targetsPath, f, payload)
}

// Close releases both controllers.
func (s *SalesTarget) Close() {
	s.Form.Close()
	s.List.Close()
}

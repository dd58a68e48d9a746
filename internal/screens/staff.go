package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const staffPath = "/staff"

// Staff is the staff management screen for editing existing staff
// records. New accounts go through the registration screen instead.
type Staff struct {
	Form *form.Controller
	List *form.ListController[model.Staff]

	deps Deps
}

// NewStaff builds the staff screen.
func NewStaff(d Deps) *Staff {
	s := &Staff{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: func(f validation.FormState) *validation.Result {
			return d.Engine.ValidateForm(f, d.Engine.StaffRules())
		},
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Submit:        s.submit,
	})
	s.List = form.NewListController[model.Staff](crudList(d, staffPath))
	return s
}

func (s *Staff) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.Staff{
		FirstName:  str(f, "first_name"),
		LastName:   str(f, "last_name"),
		Email:      str(f, "email"),
		Phone:      str(f, "phone"),
		NationalID: str(f, "national_id"),
		RoleID:     int(num(f, "role_id")),
		Active:     str(f, "active") != "false",
	}
	return upsert(ctx, s.deps, staffPath, f, payload)
}

// Close releases both controllers.
func (s *Staff) Close() {
	s.Form.Close()
	s.List.Close()
}

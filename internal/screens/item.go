package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const itemsPath = "/items"

// Item is the inventory management screen.
type Item struct {
	Form *form.Controller
	List *form.ListController[model.Item]

	deps Deps
}

// NewItem builds the inventory screen.
func NewItem(d Deps) *Item {
	s := &Item{deps: d}
	s.Form = form.NewController(form.Config{
		Validate:      d.Engine.ValidateProductForm,
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Submit:        s.submit,
	})
	s.List = form.NewListController[model.Item](crudList(d, itemsPath))
	return s
}

func (s *Item) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.Item{
		Name:     str(f, "name"),
		Code:     str(f, "code"),
		Group:    str(f, "group"),
		Price:    num(f, "price"),
		Quantity: num(f, "quantity"),
		Unit:     str(f, "unit"),
	}
	return upsert(ctx, s.deps, itemsPath, f, payload)
}

// Close releases both controllers.
func (s *Item) Close() {
	s.Form.Close()
	s.List.Close()
}

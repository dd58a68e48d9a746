// Package screens assembles the per-entity management screens from the
// generic form and list controllers. Each screen owns its endpoints,
// its payload construction and the reference lists it loads on mount;
// everything else (validation flow, submit guards, alert taxonomy,
// pagination) comes from the controllers.
package screens

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tijarah-io/tijarah/internal/auth"
	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/refdata"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// Deps carries the shared services every screen needs.
type Deps struct {
	API     *apiclient.Client
	Auth    *auth.Service
	Refdata *refdata.Service
	Engine  *validation.Engine
	Locale  *locale.Provider
}

// crudList builds the list wiring for a conventional paginated
// collection endpoint with DELETE <path>/<id>.
func crudList(d Deps, path string) form.ListConfig {
	return form.ListConfig{
		Fetch: func(ctx context.Context, page int) apiclient.Result {
			return d.API.Get(ctx, path, url.Values{"page": []string{strconv.Itoa(page)}})
		},
		Remove: func(ctx context.Context, id string) apiclient.Result {
			return d.API.Delete(ctx, path+"/"+id)
		},
		Locale: d.Locale,
	}
}

// upsert posts a new record or puts an existing one depending on
// whether the form carries an id.
func upsert(ctx context.Context, d Deps, path string, f validation.FormState, payload any) apiclient.Result {
	if id := str(f, "id"); id != "" {
		return d.API.Put(ctx, path+"/"+id, payload)
	}
	return d.API.Post(ctx, path, payload)
}

func str(f validation.FormState, key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// num coerces a form value at the payload boundary. Validation already
// guaranteed numeric fields parse; missing optional fields become 0.
func num(f validation.FormState, key string) float64 {
	n, _ := validation.ToNumber(f[key])
	return n
}

func id64(f validation.FormState, key string) uint64 {
	return uint64(num(f, key))
}

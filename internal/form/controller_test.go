package form

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/credstore"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

func testLocale(t *testing.T) *locale.Provider {
	t.Helper()
	vault := credstore.NewVault(credstore.NewMemoryStore())
	return locale.NewProvider(context.Background(), vault)
}

func requireName(loc *locale.Provider) func(validation.FormState) *validation.Result {
	return func(f validation.FormState) *validation.Result {
		r := &validation.Result{Valid: true, Errors: map[string]string{}}
		if !validation.IsRequired(f["name"]) {
			r.Fail("name", loc.T(locale.KeyRequired))
		}
		return r
	}
}

func TestSubmitGuardsConcurrentCalls(t *testing.T) {
	loc := testLocale(t)
	release := make(chan struct{})
	started := make(chan struct{})

	c := NewController(Config{
		Locale: loc,
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			close(started)
			<-release
			return apiclient.Result{Success: true, Status: 200}
		},
	})
	c.Mount(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	var first Outcome
	go func() {
		defer wg.Done()
		first = c.Submit(context.Background())
	}()

	<-started
	assert.Equal(t, OutcomeBusy, c.Submit(context.Background()))
	close(release)
	wg.Wait()
	assert.Equal(t, OutcomeSuccess, first)
}

func TestInvalidFormNeverSubmits(t *testing.T) {
	loc := testLocale(t)
	called := false
	c := NewController(Config{
		Locale:   loc,
		Validate: requireName(loc),
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			called = true
			return apiclient.Result{Success: true, Status: 200}
		},
	})
	c.Mount(context.Background())

	assert.Equal(t, OutcomeInvalid, c.Submit(context.Background()))
	assert.False(t, called)
	_, ok := c.FieldError("name")
	assert.True(t, ok)
}

func TestSuccessResetsFormAndErrors(t *testing.T) {
	loc := testLocale(t)
	c := NewController(Config{
		Locale:   loc,
		Validate: requireName(loc),
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			return apiclient.Result{Success: true, Status: 200}
		},
	})
	c.Mount(context.Background())
	c.SetField("name", "x")

	require.Equal(t, OutcomeSuccess, c.Submit(context.Background()))
	assert.Nil(t, c.Field("name"))
	assert.Empty(t, c.Errors())
}

func TestMountLoadFailureAlerts(t *testing.T) {
	loc := testLocale(t)
	c := NewController(Config{
		Locale: loc,
		Load: func(ctx context.Context) *errors.Errno {
			return errors.ErrNetwork
		},
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			return apiclient.Result{Success: true, Status: 200}
		},
	})
	c.Mount(context.Background())

	assert.Equal(t, PhaseIdle, c.Phase())
	alert, ok := c.Alert()
	require.True(t, ok)
	assert.Equal(t, AlertNetwork, alert.Kind)
}

func TestBusinessRejectionUsesBodyMessage(t *testing.T) {
	loc := testLocale(t)
	c := NewController(Config{
		Locale: loc,
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			return apiclient.Result{Status: 422, Message: "Quantity exceeds stock"}
		},
	})
	c.Mount(context.Background())

	assert.Equal(t, OutcomeAlert, c.Submit(context.Background()))
	alert, ok := c.Alert()
	require.True(t, ok)
	assert.Equal(t, AlertBusiness, alert.Kind)
	assert.Equal(t, "Quantity exceeds stock", alert.Message)
}

func TestListRefusesOverlappingLoads(t *testing.T) {
	loc := testLocale(t)
	release := make(chan struct{})
	started := make(chan struct{})
	l := NewListController[int](ListConfig{
		Locale: loc,
		Fetch: func(ctx context.Context, page int) apiclient.Result {
			close(started)
			<-release
			return pageResult(page, 10, 30)
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Refresh(context.Background())
	}()

	<-started
	assert.Equal(t, OutcomeBusy, l.LoadMore(context.Background()))
	close(release)
	wg.Wait()
	assert.Equal(t, 1, l.Page())
}

func TestListAppendsInPageOrder(t *testing.T) {
	loc := testLocale(t)
	l := NewListController[int](ListConfig{
		Locale: loc,
		Fetch: func(ctx context.Context, page int) apiclient.Result {
			return pageResult(page, 3, 7)
		},
	})

	ctx := context.Background()
	require.Equal(t, OutcomeSuccess, l.Refresh(ctx))
	require.Equal(t, OutcomeSuccess, l.LoadMore(ctx))
	require.Equal(t, OutcomeSuccess, l.LoadMore(ctx))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, l.Items())
	assert.False(t, l.HasMore())
}

// pageResult fabricates a backend page envelope of sequential ints.
func pageResult(page, perPage, total int) apiclient.Result {
	start := (page-1)*perPage + 1
	end := start + perPage - 1
	if end > total {
		end = total
	}
	data := "["
	for i := start; i <= end; i++ {
		if i > start {
			data += ","
		}
		data += fmt.Sprintf("%d", i)
	}
	data += "]"

	next := "null"
	if end < total {
		next = fmt.Sprintf(`"/things?page=%d"`, page+1)
	}
	payload := fmt.Sprintf(`{"current_page": %d, "data": %s, "next_page_url": %s, "per_page": %d, "total": %d}`,
		page, data, next, perPage, total)
	return apiclient.Result{Success: true, Status: 200, Data: []byte(payload)}
}

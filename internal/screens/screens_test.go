package screens

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijarah-io/tijarah/internal/auth"
	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/mockd"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/internal/refdata"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/credstore"
	"github.com/tijarah-io/tijarah/pkg/device"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/locale"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

// newDeps builds a full client stack against a mock backend and logs
// the demo account in.
func newDeps(t *testing.T, opts ...mockd.Option) Deps {
	t.Helper()
	srv := httptest.NewServer(mockd.New(opts...))
	t.Cleanup(srv.Close)

	vault := credstore.NewVault(credstore.NewMemoryStore())
	loc := locale.NewProvider(context.Background(), vault)
	engine := validation.NewEngine(loc)

	api := apiclient.New(srv.URL, apiclient.WithTokenSource(
		apiclient.TokenFunc(func(ctx context.Context) (string, error) {
			creds, err := vault.Credentials(ctx)
			return creds.Token, err
		})))
	authSvc := auth.NewService(api, vault, engine)

	rd, err := refdata.NewService(api, "")
	require.NoError(t, err)
	t.Cleanup(func() { rd.Close() })

	ctx := context.Background()
	res, vr := authSvc.Login(ctx, validation.FormState{
		"email":    mockd.DefaultAccount.Email,
		"password": mockd.DefaultAccount.Password,
	}, false)
	require.Nil(t, vr)
	require.True(t, res.Success)

	return Deps{API: api, Auth: authSvc, Refdata: rd, Engine: engine, Locale: loc}
}

func TestCustomerScreenCreateFlow(t *testing.T) {
	d := newDeps(t)
	s := NewCustomer(d)
	defer s.Close()
	ctx := context.Background()

	s.Form.Mount(ctx)
	require.Equal(t, form.PhaseReady, s.Form.Phase())
	require.Len(t, s.Territories(), 3)

	// Invalid first: required fields missing, nothing hits the wire.
	outcome := s.Form.Submit(ctx)
	assert.Equal(t, form.OutcomeInvalid, outcome)
	assert.True(t, len(s.Form.Errors()) >= 2)

	s.Form.SetField("name", "Al Noor Trading")
	s.Form.SetField("territory", "Riyadh")
	s.Form.SetField("email", "noor@example.com")
	outcome = s.Form.Submit(ctx)
	assert.Equal(t, form.OutcomeSuccess, outcome)

	require.Equal(t, form.OutcomeSuccess, s.List.Refresh(ctx))
	items := s.List.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Al Noor Trading", items[0].Name)
}

func TestCustomerMountWithoutSessionStops(t *testing.T) {
	d := newDeps(t)
	require.True(t, d.Auth.Logout(context.Background()).Success)

	s := NewCustomer(d)
	defer s.Close()
	s.Form.Mount(context.Background())

	assert.Equal(t, form.PhaseIdle, s.Form.Phase())
	alert, ok := s.Form.Alert()
	require.True(t, ok)
	assert.Equal(t, form.AlertAuth, alert.Kind)
}

func TestSetFieldClearsOnlyThatError(t *testing.T) {
	d := newDeps(t)
	s := NewCustomer(d)
	defer s.Close()
	ctx := context.Background()
	s.Form.Mount(ctx)

	require.Equal(t, form.OutcomeInvalid, s.Form.Submit(ctx))
	_, nameErr := s.Form.FieldError("name")
	_, terrErr := s.Form.FieldError("territory")
	require.True(t, nameErr)
	require.True(t, terrErr)

	s.Form.SetField("name", "X")
	_, nameErr = s.Form.FieldError("name")
	_, terrErr = s.Form.FieldError("territory")
	assert.False(t, nameErr)
	assert.True(t, terrErr)
}

func TestListPaginationAndDelete(t *testing.T) {
	records := make([]gin.H, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, gin.H{"name": "Customer", "territory": "Riyadh"})
	}
	d := newDeps(t, mockd.WithRecords("customers", records...))
	s := NewCustomer(d)
	defer s.Close()
	ctx := context.Background()

	require.Equal(t, form.OutcomeSuccess, s.List.Refresh(ctx))
	assert.Len(t, s.List.Items(), 10)
	assert.True(t, s.List.HasMore())

	require.Equal(t, form.OutcomeSuccess, s.List.LoadMore(ctx))
	assert.Len(t, s.List.Items(), 20)
	require.Equal(t, form.OutcomeSuccess, s.List.LoadMore(ctx))
	assert.Len(t, s.List.Items(), 25)
	assert.False(t, s.List.HasMore())

	// LoadMore past the end is a quiet no-op.
	require.Equal(t, form.OutcomeSuccess, s.List.LoadMore(ctx))
	assert.Len(t, s.List.Items(), 25)

	// Declining the confirmation leaves the record alone.
	outcome := s.List.Delete(ctx, "1", func() bool { return false })
	assert.Equal(t, form.OutcomeDiscarded, outcome)

	// Confirmed delete refetches page 1 from the backend.
	outcome = s.List.Delete(ctx, "1", func() bool { return true })
	assert.Equal(t, form.OutcomeSuccess, outcome)
	assert.Equal(t, 1, s.List.Page())
	assert.Len(t, s.List.Items(), 10)
}

func TestBackendFieldErrorsLandOnFields(t *testing.T) {
	d := newDeps(t)
	c := form.NewController(form.Config{
		Locale: d.Locale,
		Submit: func(ctx context.Context, f validation.FormState) apiclient.Result {
			return apiclient.Result{
				Status:  422,
				Message: "The given data was invalid.",
				Errors:  map[string]string{"email": "The email has already been taken."},
			}
		},
	})
	defer c.Close()
	ctx := context.Background()
	c.Mount(ctx)

	outcome := c.Submit(ctx)
	assert.Equal(t, form.OutcomeFieldErrors, outcome)
	msg, ok := c.FieldError("email")
	require.True(t, ok)
	assert.Equal(t, "The email has already been taken.", msg)
}

func TestNetworkFailureRaisesAlertNotPanic(t *testing.T) {
	d := newDeps(t)
	dead := d
	dead.API = apiclient.New("http://127.0.0.1:1")

	s := NewItem(dead)
	defer s.Close()
	ctx := context.Background()
	s.Form.Mount(ctx)
	require.Equal(t, form.PhaseReady, s.Form.Phase())

	s.Form.SetField("name", "Dates 1kg")
	s.Form.SetField("price", "30")
	outcome := s.Form.Submit(ctx)
	assert.Equal(t, form.OutcomeAlert, outcome)
	alert, ok := s.Form.Alert()
	require.True(t, ok)
	assert.Equal(t, form.AlertNetwork, alert.Kind)
}

func TestCloseDiscardsLateResult(t *testing.T) {
	d := newDeps(t)
	s := NewItem(d)
	ctx := context.Background()
	s.Form.Mount(ctx)

	s.Form.SetField("name", "Dates 1kg")
	s.Form.SetField("price", "30")
	s.Close()
	assert.Equal(t, form.OutcomeDiscarded, s.Form.Submit(ctx))
}

func TestExpenseMultipartReceipt(t *testing.T) {
	d := newDeps(t)
	picker := stubPicker{img: device.Image{Name: "receipt.jpg", Content: []byte("jpeg-bytes")}}
	s := NewExpense(d, picker)
	defer s.Close()
	ctx := context.Background()

	s.Form.Mount(ctx)
	require.Equal(t, form.PhaseReady, s.Form.Phase())
	require.Len(t, s.Types(), 3)

	require.Nil(t, s.AttachReceipt(ctx))
	require.True(t, s.HasReceipt())

	s.Form.SetField("type", "Fuel")
	s.Form.SetField("amount", "45.50")
	s.Form.SetField("date", "2025-03-10")
	assert.Equal(t, form.OutcomeSuccess, s.Form.Submit(ctx))

	require.Equal(t, form.OutcomeSuccess, s.List.Refresh(ctx))
	items := s.List.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "/uploads/receipt.jpg", items[0].ReceiptURL)
}

func TestExpensePickerCancelKeepsState(t *testing.T) {
	d := newDeps(t)
	s := NewExpense(d, device.CancelledPicker{})
	defer s.Close()

	require.Nil(t, s.AttachReceipt(context.Background()))
	assert.False(t, s.HasReceipt())
}

func TestInvoiceRequiresLines(t *testing.T) {
	d := newDeps(t)
	s := NewSalesInvoice(d)
	defer s.Close()
	ctx := context.Background()
	s.Form.Mount(ctx)
	require.Equal(t, form.PhaseReady, s.Form.Phase())

	s.Form.SetField("customer", "1")
	s.Form.SetField("date", "2025-03-10")
	s.Form.SetField("total", "100")
	require.Equal(t, form.OutcomeInvalid, s.Form.Submit(ctx))
	_, hasLinesErr := s.Form.FieldError("lines")
	assert.True(t, hasLinesErr)
}

func TestInvoiceLineTotals(t *testing.T) {
	d := newDeps(t)
	s := NewSalesInvoice(d)
	defer s.Close()
	ctx := context.Background()
	s.Form.Mount(ctx)

	s.AddLine(modelLine(5, 2, 30))
	s.AddLine(modelLine(6, 1, 40))
	assert.InDelta(t, 100.0, s.Form.Field("total"), 0.001)

	s.RemoveLine(1)
	assert.InDelta(t, 60.0, s.Form.Field("total"), 0.001)

	s.Form.SetField("customer", "1")
	s.Form.SetField("date", "2025-03-10")
	assert.Equal(t, form.OutcomeSuccess, s.Form.Submit(ctx))
}

func TestLoginScreenRemembersEmail(t *testing.T) {
	d := newDeps(t)
	require.True(t, d.Auth.Logout(context.Background()).Success)

	s := NewLogin(d)
	ctx := context.Background()
	s.Form.Mount(ctx)
	s.SetRememberMe(true)
	s.Form.SetField("email", mockd.DefaultAccount.Email)
	s.Form.SetField("password", mockd.DefaultAccount.Password)
	require.Equal(t, form.OutcomeSuccess, s.Form.Submit(ctx))
	s.Close()

	// A fresh login screen prefills the remembered email.
	again := NewLogin(d)
	defer again.Close()
	again.Form.Mount(ctx)
	assert.Equal(t, mockd.DefaultAccount.Email, again.Form.Field("email"))
	assert.True(t, again.RememberMe())
}

type stubPicker struct {
	img device.Image
}

func (p stubPicker) Pick(context.Context) (device.Image, *errors.Errno) {
	return p.img, nil
}

func modelLine(itemID uint64, qty, rate float64) model.InvoiceLine {
	return model.InvoiceLine{ItemID: itemID, Quantity: qty, Rate: rate}
}

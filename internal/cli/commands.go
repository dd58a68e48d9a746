package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/refdata"
	"github.com/tijarah-io/tijarah/internal/screens"
	"github.com/tijarah-io/tijarah/pkg/device"
	"github.com/tijarah-io/tijarah/pkg/locale"
)

// stackFunc builds the client stack lazily, after flags and config are
// resolved.
type stackFunc func() (*Stack, error)

func commands(newStack stackFunc) []*cobra.Command {
	return []*cobra.Command{
		loginCommand(newStack),
		logoutCommand(newStack),
		whoamiCommand(newStack),
		registerCommand(newStack),
		langCommand(newStack),
		customerCommand(newStack),
		itemCommand(newStack),
		supplierCommand(newStack),
		invoiceCommand(newStack),
		expenseCommand(newStack),
		orderCommand(newStack),
		paymentCommand(newStack),
		staffCommand(newStack),
		targetCommand(newStack),
	}
}

func withStack(newStack stackFunc, run func(ctx context.Context, s *Stack, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newStack()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		defer s.Close(ctx)
		return run(ctx, s, cmd, args)
	}
}

// reportForm prints a submit outcome and returns an error for anything
// that should fail the command.
func reportForm(cmd *cobra.Command, c *form.Controller, outcome form.Outcome) error {
	switch outcome {
	case form.OutcomeSuccess:
		cmd.Println("OK")
		return nil
	case form.OutcomeInvalid, form.OutcomeFieldErrors:
		errs := c.Errors()
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			cmd.Printf("  %s: %s\n", f, errs[f])
		}
		return fmt.Errorf("form rejected")
	default:
		if alert, ok := c.Alert(); ok {
			return fmt.Errorf("%s", alert.Message)
		}
		return fmt.Errorf("submit failed")
	}
}

func mountOrFail(ctx context.Context, c *form.Controller) error {
	c.Mount(ctx)
	if alert, ok := c.Alert(); ok {
		return fmt.Errorf("%s", alert.Message)
	}
	return nil
}

// setFields copies flag values into the form, skipping unset flags so
// the controller sees only what the user typed.
func setFields(cmd *cobra.Command, c *form.Controller, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if cmd.Flags().Changed(fields[name]) {
			value, _ := cmd.Flags().GetString(fields[name])
			c.SetField(name, value)
		}
	}
}

func loginCommand(newStack stackFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewLogin(s.Screens())
			defer screen.Close()
			if err := mountOrFail(ctx, screen.Form); err != nil {
				return err
			}
			remember, _ := cmd.Flags().GetBool("remember")
			screen.SetRememberMe(remember)
			setFields(cmd, screen.Form, map[string]string{"email": "email", "password": "password"})
			if err := reportForm(cmd, screen.Form, screen.Form.Submit(ctx)); err != nil {
				return err
			}
			// Warm the reference lists so the first screen opens fast.
			s.Refdata.Prefetch(ctx,
				refdata.KindTerritories, refdata.KindExpenseTypes,
				refdata.KindCustomers, refdata.KindSuppliers,
				refdata.KindItems, refdata.KindStaff)
			return nil
		}),
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().Bool("remember", false, "Remember the email for the next login")
	return cmd
}

func logoutCommand(newStack stackFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			res := s.Auth.Logout(ctx)
			if res.NetworkError {
				cmd.Println("Backend unreachable; local session cleared")
				return nil
			}
			cmd.Println("Logged out")
			return nil
		}),
	}
}

func whoamiCommand(newStack stackFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			if errno := s.Auth.EnsureAuthenticated(ctx); errno != nil {
				return fmt.Errorf("%s", errno.Message(s.Locale.Active().Code))
			}
			user, ok := s.Auth.CurrentUser(ctx)
			if !ok {
				cmd.Println("Logged in (no cached profile)")
				return nil
			}
			cmd.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			return nil
		}),
	}
}

func registerCommand(newStack stackFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new staff account",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewRegister(s.Screens())
			defer screen.Close()
			if err := mountOrFail(ctx, screen.Form); err != nil {
				return err
			}
			setFields(cmd, screen.Form, map[string]string{
				"first_name":            "first-name",
				"last_name":             "last-name",
				"email":                 "email",
				"phone":                 "phone",
				"national_id":           "national-id",
				"dob":                   "dob",
				"password":              "password",
				"password_confirmation": "confirm",
				"role_id":               "role",
			})
			strength := screen.PasswordStrength()
			cmd.Printf("Password strength: %s\n", strength.Strength)
			return reportForm(cmd, screen.Form, screen.Form.Submit(ctx))
		}),
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("email", "", "Email")
	cmd.Flags().String("phone", "", "Phone")
	cmd.Flags().String("national-id", "", "National ID")
	cmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().String("confirm", "", "Password confirmation")
	cmd.Flags().String("role", "", "Role ID (1|2|3)")
	return cmd
}

func langCommand(newStack stackFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [en|ar]",
		Short: "Show or switch the UI language",
		Args:  cobra.MaximumNArgs(1),
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				active := s.Locale.Active()
				cmd.Printf("%s (rtl: %v)\n", active.Code, active.RTL)
				return nil
			}
			if err := s.Locale.SetLanguage(ctx, args[0]); err != nil {
				return err
			}
			cmd.Println(s.Locale.T(locale.KeySaved))
			return nil
		}),
	}
}

// entityScreen is what listAddDelete needs from the simple entity
// screens; the adapters below bind the concrete screen types to it.
type entityScreen interface {
	FormController() *form.Controller
	Refresh(ctx context.Context) form.Outcome
	LoadMore(ctx context.Context) form.Outcome
	Delete(ctx context.Context, id string) form.Outcome
	Render(cmd *cobra.Command)
	HasMore() bool
	Close()
}

func listAddDelete(use, short string, newStack stackFunc, open func(s *Stack) entityScreen, fields map[string]string, flags func(*cobra.Command)) *cobra.Command {
	root := &cobra.Command{Use: use, Short: short}

	list := &cobra.Command{
		Use:   "list",
		Short: "List records",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := open(s)
			defer screen.Close()
			all, _ := cmd.Flags().GetBool("all")
			if outcome := screen.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for all && screen.HasMore() {
				if outcome := screen.LoadMore(ctx); outcome != form.OutcomeSuccess {
					return fmt.Errorf("list failed")
				}
			}
			screen.Render(cmd)
			return nil
		}),
	}
	list.Flags().Bool("all", false, "Fetch every page")

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := open(s)
			defer screen.Close()
			c := screen.FormController()
			if err := mountOrFail(ctx, c); err != nil {
				return err
			}
			setFields(cmd, c, fields)
			return reportForm(cmd, c, c.Submit(ctx))
		}),
	}
	flags(add)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, args []string) error {
			screen := open(s)
			defer screen.Close()
			if outcome := screen.Delete(ctx, args[0]); outcome != form.OutcomeSuccess {
				return fmt.Errorf("delete failed")
			}
			cmd.Println("Deleted")
			return nil
		}),
	}

	root.AddCommand(list, add, del)
	return root
}

func expenseCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "expense", Short: "Manage expenses"}

	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			receipt, _ := cmd.Flags().GetString("receipt")
			screen := screens.NewExpense(s.Screens(), device.FilePicker{Path: receipt})
			defer screen.Close()
			if err := mountOrFail(ctx, screen.Form); err != nil {
				return err
			}
			if receipt != "" {
				if errno := screen.AttachReceipt(ctx); errno != nil {
					return fmt.Errorf("%s", errno.Message(s.Locale.Active().Code))
				}
			}
			setFields(cmd, screen.Form, map[string]string{
				"type": "type", "amount": "amount", "date": "date", "note": "note",
			})
			return reportForm(cmd, screen.Form, screen.Form.Submit(ctx))
		}),
	}
	add.Flags().String("type", "", "Expense type")
	add.Flags().String("amount", "", "Amount")
	add.Flags().String("date", "", "Date (YYYY-MM-DD)")
	add.Flags().String("note", "", "Note")
	add.Flags().String("receipt", "", "Path to a receipt image")

	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewExpense(s.Screens(), device.CancelledPicker{})
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, e := range screen.List.Items() {
				cmd.Printf("%d\t%s\t%.2f\t%s\n", e.ID, e.Type, e.Amount, e.Date)
			}
			return nil
		}),
	}

	root.AddCommand(add, list)
	return root
}

func paymentCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "payment", Short: "Manage payments"}

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a payment",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewPayment(s.Screens())
			defer screen.Close()
			if err := mountOrFail(ctx, screen.Form); err != nil {
				return err
			}
			setFields(cmd, screen.Form, map[string]string{
				"party_type": "party-type", "party": "party", "invoice": "invoice",
				"amount": "amount", "date": "date", "method": "method", "reference_no": "reference",
			})
			return reportForm(cmd, screen.Form, screen.Form.Submit(ctx))
		}),
	}
	add.Flags().String("party-type", "", "Party type (customer|supplier)")
	add.Flags().String("party", "", "Party ID")
	add.Flags().String("invoice", "", "Invoice ID")
	add.Flags().String("amount", "", "Amount")
	add.Flags().String("date", "", "Date (YYYY-MM-DD)")
	add.Flags().String("method", "", "Payment method")
	add.Flags().String("reference", "", "Reference number")

	list := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewPayment(s.Screens())
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, p := range screen.List.Items() {
				cmd.Printf("%d\t%s/%d\t%.2f\t%s\n", p.ID, p.PartyType, p.PartyID, p.Amount, p.Date)
			}
			return nil
		}),
	}

	root.AddCommand(add, list)
	return root
}

func targetCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "target", Short: "Manage sales targets"}

	add := &cobra.Command{
		Use:   "add",
		Short: "Assign a sales target",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewSalesTarget(s.Screens())
			defer screen.Close()
			if err := mountOrFail(ctx, screen.Form); err != nil {
				return err
			}
			setFields(cmd, screen.Form, map[string]string{
				"staff": "staff", "period_key": "period", "amount": "amount",
			})
			return reportForm(cmd, screen.Form, screen.Form.Submit(ctx))
		}),
	}
	add.Flags().String("staff", "", "Staff ID")
	add.Flags().String("period", "", "Period key (YYYY-MM)")
	add.Flags().String("amount", "", "Target amount")

	list := &cobra.Command{
		Use:   "list",
		Short: "List sales targets",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewSalesTarget(s.Screens())
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, tgt := range screen.List.Items() {
				cmd.Printf("%d\t%d\t%s\t%.2f/%.2f\n", tgt.ID, tgt.StaffID, tgt.PeriodKey, tgt.Achieved, tgt.Amount)
			}
			return nil
		}),
	}

	root.AddCommand(add, list)
	return root
}

func staffCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "staff", Short: "Manage staff"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List staff",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewStaff(s.Screens())
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, m := range screen.List.Items() {
				cmd.Printf("%d\t%s %s\t%s\trole %d\n", m.ID, m.FirstName, m.LastName, m.Email, m.RoleID)
			}
			return nil
		}),
	}

	root.AddCommand(list)
	return root
}

func invoiceCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "invoice", Short: "Manage sales invoices"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sales invoices",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewSalesInvoice(s.Screens())
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, inv := range screen.List.Items() {
				cmd.Printf("%d\tcustomer %d\t%s\t%.2f (paid %.2f)\n",
					inv.ID, inv.CustomerID, inv.Date, inv.Total, inv.PaidAmount)
			}
			return nil
		}),
	}

	root.AddCommand(list)
	return root
}

func orderCommand(newStack stackFunc) *cobra.Command {
	root := &cobra.Command{Use: "order", Short: "Manage purchase orders"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List purchase orders",
		RunE: withStack(newStack, func(ctx context.Context, s *Stack, cmd *cobra.Command, _ []string) error {
			screen := screens.NewPurchaseOrder(s.Screens())
			defer screen.Close()
			if outcome := screen.List.Refresh(ctx); outcome != form.OutcomeSuccess {
				return fmt.Errorf("list failed")
			}
			for _, o := range screen.List.Items() {
				cmd.Printf("%d\tsupplier %d\t%s\t%.2f\n", o.ID, o.SupplierID, o.Date, o.Total)
			}
			return nil
		}),
	}

	root.AddCommand(list)
	return root
}

func customerCommand(newStack stackFunc) *cobra.Command {
	cmd := listAddDelete("customer", "Manage customers", newStack,
		func(s *Stack) entityScreen { return customerAdapter{screens.NewCustomer(s.Screens())} },
		map[string]string{
			"name": "name", "territory": "territory", "group": "group",
			"email": "email", "phone": "phone", "address": "address",
		},
		func(add *cobra.Command) {
			add.Flags().String("name", "", "Customer name")
			add.Flags().String("territory", "", "Territory")
			add.Flags().String("group", "", "Customer group")
			add.Flags().String("email", "", "Email")
			add.Flags().String("phone", "", "Phone")
			add.Flags().String("address", "", "Address")
		})
	return cmd
}

func itemCommand(newStack stackFunc) *cobra.Command {
	return listAddDelete("item", "Manage inventory items", newStack,
		func(s *Stack) entityScreen { return itemAdapter{screens.NewItem(s.Screens())} },
		map[string]string{
			"name": "name", "code": "code", "group": "group",
			"price": "price", "quantity": "quantity", "unit": "unit",
		},
		func(add *cobra.Command) {
			add.Flags().String("name", "", "Item name")
			add.Flags().String("code", "", "Item code")
			add.Flags().String("group", "", "Item group")
			add.Flags().String("price", "", "Unit price")
			add.Flags().String("quantity", "", "Opening quantity")
			add.Flags().String("unit", "", "Unit of measure")
		})
}

func supplierCommand(newStack stackFunc) *cobra.Command {
	return listAddDelete("supplier", "Manage suppliers", newStack,
		func(s *Stack) entityScreen { return supplierAdapter{screens.NewSupplier(s.Screens())} },
		map[string]string{
			"name": "name", "group": "group", "email": "email",
			"phone": "phone", "address": "address",
		},
		func(add *cobra.Command) {
			add.Flags().String("name", "", "Supplier name")
			add.Flags().String("group", "", "Supplier group")
			add.Flags().String("email", "", "Email")
			add.Flags().String("phone", "", "Phone")
			add.Flags().String("address", "", "Address")
		})
}

// confirmed always approves; the CLI's explicit delete subcommand is
// the confirmation.
func confirmed() bool { return true }

type customerAdapter struct{ *screens.Customer }

func (a customerAdapter) FormController() *form.Controller { return a.Form }
func (a customerAdapter) Refresh(ctx context.Context) form.Outcome {
	return a.List.Refresh(ctx)
}
func (a customerAdapter) LoadMore(ctx context.Context) form.Outcome {
	return a.List.LoadMore(ctx)
}
func (a customerAdapter) Delete(ctx context.Context, id string) form.Outcome {
	return a.List.Delete(ctx, id, confirmed)
}
func (a customerAdapter) HasMore() bool { return a.List.HasMore() }
func (a customerAdapter) Render(cmd *cobra.Command) {
	for _, c := range a.List.Items() {
		cmd.Printf("%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Territory, c.Phone)
	}
}

type itemAdapter struct{ *screens.Item }

func (a itemAdapter) FormController() *form.Controller { return a.Form }
func (a itemAdapter) Refresh(ctx context.Context) form.Outcome {
	return a.List.Refresh(ctx)
}
func (a itemAdapter) LoadMore(ctx context.Context) form.Outcome {
	return a.List.LoadMore(ctx)
}
func (a itemAdapter) Delete(ctx context.Context, id string) form.Outcome {
	return a.List.Delete(ctx, id, confirmed)
}
func (a itemAdapter) HasMore() bool { return a.List.HasMore() }
func (a itemAdapter) Render(cmd *cobra.Command) {
	for _, i := range a.List.Items() {
		cmd.Printf("%d\t%s\t%.2f\t%.1f %s\n", i.ID, i.Name, i.Price, i.Quantity, i.Unit)
	}
}

type supplierAdapter struct{ *screens.Supplier }

func (a supplierAdapter) FormController() *form.Controller { return a.Form }
func (a supplierAdapter) Refresh(ctx context.Context) form.Outcome {
	return a.List.Refresh(ctx)
}
func (a supplierAdapter) LoadMore(ctx context.Context) form.Outcome {
	return a.List.LoadMore(ctx)
}
func (a supplierAdapter) Delete(ctx context.Context, id string) form.Outcome {
	return a.List.Delete(ctx, id, confirmed)
}
func (a supplierAdapter) HasMore() bool { return a.List.HasMore() }
func (a supplierAdapter) Render(cmd *cobra.Command) {
	for _, sp := range a.List.Items() {
		cmd.Printf("%d\t%s\t%s\n", sp.ID, sp.Name, sp.Phone)
	}
}

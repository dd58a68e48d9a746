package model

// Customer is a customer record.
type Customer struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name" validate:"required"`
	Group     string `json:"group,omitempty"`
	Territory string `json:"territory" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   string `json:"address,omitempty"`
	Disabled  bool   `json:"disabled"`
}

// Item is an inventory item.
type Item struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Code     string  `json:"code,omitempty"`
	Group    string  `json:"group,omitempty"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	PhotoURL string  `json:"photo_url,omitempty"`
}

// Supplier is a supplier record.
type Supplier struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name" validate:"required"`
	Group   string `json:"group,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address string `json:"address,omitempty"`
}

// InvoiceLine is one line of a sales invoice or purchase order.
type InvoiceLine struct {
	ItemID   uint64  `json:"item_id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Rate     float64 `json:"rate" validate:"required,gt=0"`
	Amount   float64 `json:"amount"`
}

// SalesInvoice is a sales invoice.
type SalesInvoice struct {
	ID         uint64        `json:"id"`
	CustomerID uint64        `json:"customer_id" validate:"required"`
	Date       string        `json:"date" validate:"required"`
	Lines      []InvoiceLine `json:"lines" validate:"required,min=1,dive"`
	Total      float64       `json:"total" validate:"required,gt=0"`
	PaidAmount float64       `json:"paid_amount"`
	Status     string        `json:"status,omitempty"`
}

// Expense is an expense record; ReceiptURL points at the uploaded
// receipt image when one was attached.
type Expense struct {
	ID         uint64  `json:"id"`
	Type       string  `json:"type" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required"`
	Note       string  `json:"note,omitempty"`
	ReceiptURL string  `json:"receipt_url,omitempty"`
}

// PurchaseOrder is a purchase order placed with a supplier.
type PurchaseOrder struct {
	ID         uint64        `json:"id"`
	SupplierID uint64        `json:"supplier_id" validate:"required"`
	Date       string        `json:"date" validate:"required"`
	Lines      []InvoiceLine `json:"lines" validate:"required,min=1,dive"`
	Total      float64       `json:"total" validate:"required,gt=0"`
	Status     string        `json:"status,omitempty"`
}

// Payment records money received against an invoice or paid to a
// supplier.
type Payment struct {
	ID          uint64  `json:"id"`
	PartyType   string  `json:"party_type" validate:"required,oneof=customer supplier"`
	PartyID     uint64  `json:"party_id" validate:"required"`
	InvoiceID   uint64  `json:"invoice_id,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`
	Method      string  `json:"method,omitempty"`
	ReferenceNo string  `json:"reference_no,omitempty"`
}

// Staff is a staff member account.
type Staff struct {
	ID         uint64 `json:"id"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,phone"`
	NationalID string `json:"national_id,omitempty" validate:"omitempty,national_id"`
	RoleID     int    `json:"role_id" validate:"required,oneof=1 2 3"`
	Active     bool   `json:"active"`
}

// SalesTarget is a per-staff sales target for a period.
type SalesTarget struct {
	ID        uint64  `json:"id"`
	StaffID   uint64  `json:"staff_id" validate:"required"`
	PeriodKey string  `json:"period_key" validate:"required"` // e.g. 2025-03
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Achieved  float64 `json:"achieved"`
}

// Territory is a reference-data lookup row for the customer form.
type Territory struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ExpenseType is a reference-data lookup row for the expense form.
type ExpenseType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexFloat accepts a JSON number or a numeric string ("1,234.50") so that
// amount fields can carry locale-formatted values straight from the client.
// The raw token is preserved; currency-aware parsing happens later.
type FlexFloat struct {
	Raw string
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		f.Raw = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		f.Raw = unquoted
		return nil
	}
	f.Raw = s
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if f.Raw == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(f.Raw, 64); err == nil {
		return []byte(f.Raw), nil
	}
	return json.Marshal(f.Raw)
}

// IsZero reports whether the token is absent or empty.
func (f FlexFloat) IsZero() bool {
	return strings.TrimSpace(f.Raw) == ""
}

// LineItem is one row of an estimate or invoice. Rate and quantity come in as
// flexible tokens; Amount is always recomputed server-side.
type LineItem struct {
	Description string    `json:"description"`
	Quantity    FlexFloat `json:"quantity"`
	Rate        FlexFloat `json:"rate"`
	Amount      float64   `json:"amount"`
}

// LineItems stores the item list as a JSON column.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported line_items column type %T", value)
	}
	if len(b) == 0 {
		*l = LineItems{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// StringList stores a JSON array of strings (project requirements etc.).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported string list column type %T", value)
	}
	if len(b) == 0 {
		*s = StringList{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// Project represents the projects table with GORM tags
type Project struct {
	ID                  int        `gorm:"primaryKey;column:id" json:"id"`
	ProjectNo           int        `gorm:"column:project_no;uniqueIndex" json:"project_no"`
	ProjectName         string     `gorm:"column:project_name;not null" json:"project_name"`
	ClientID            int        `gorm:"column:client_id" json:"client_id"`
	Priority            string     `gorm:"column:priority;default:'medium'" json:"priority"`
	ProjectStatus       string     `gorm:"column:project_status;default:'active'" json:"project_status"`
	Budget              float64    `gorm:"column:budget" json:"budget"`
	Currency            string     `gorm:"column:currency" json:"currency"`
	StartDate           *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate             *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	ProjectRequirements StringList `gorm:"column:project_requirements;type:text" json:"project_requirements"`
	Notes               string     `gorm:"column:notes" json:"notes"`
	CreatedAt           time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Job represents the jobs table with GORM tags
type Job struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	JobNo     int       `gorm:"column:job_no;uniqueIndex" json:"job_no"`
	ProjectID int       `gorm:"column:project_id;not null;index" json:"project_id"`
	BrandName string    `gorm:"column:brand_name" json:"brand_name"`
	SubBrand  string    `gorm:"column:sub_brand" json:"sub_brand"`
	Flavour   string    `gorm:"column:flavour" json:"flavour"`
	PackType  string    `gorm:"column:pack_type" json:"pack_type"`
	PackCode  string    `gorm:"column:pack_code" json:"pack_code"`
	PackSize  string    `gorm:"column:pack_size" json:"pack_size"`
	Priority  string    `gorm:"column:priority;default:'medium'" json:"priority"`
	Barcode   string    `gorm:"column:barcode" json:"barcode"`
	JobStatus string    `gorm:"column:job_status;default:'Active'" json:"job_status"`
	Assigned  string    `gorm:"column:assigned;default:'Not Assigned'" json:"assigned"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// AssignJob routes one or more jobs to a production user and/or employee.
// Job membership lives in assign_job_items, not on this row.
type AssignJob struct {
	ID               int       `gorm:"primaryKey;column:id" json:"id"`
	ProjectID        int       `gorm:"column:project_id;not null;index" json:"project_id"`
	EmployeeID       *int      `gorm:"column:employee_id;index" json:"employee_id,omitempty"`
	ProductionID     *int      `gorm:"column:production_id;index" json:"production_id,omitempty"`
	TaskDescription  string    `gorm:"column:task_description" json:"task_description"`
	TimeBudget       string    `gorm:"column:time_budget" json:"time_budget"`
	AdminStatus      string    `gorm:"column:admin_status;default:'in_progress'" json:"admin_status"`
	ProductionStatus string    `gorm:"column:production_status;default:'not_applicable'" json:"production_status"`
	EmployeeStatus   string    `gorm:"column:employee_status;default:'not_applicable'" json:"employee_status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for AssignJob
func (AssignJob) TableName() string {
	return "assign_jobs"
}

// AssignJobItem is the assignment-to-job membership row.
type AssignJobItem struct {
	ID          int `gorm:"primaryKey;column:id" json:"id"`
	AssignJobID int `gorm:"column:assign_job_id;not null;uniqueIndex:idx_assign_job_member" json:"assign_job_id"`
	JobID       int `gorm:"column:job_id;not null;uniqueIndex:idx_assign_job_member;index" json:"job_id"`
}

// TableName specifies the table name for AssignJobItem
func (AssignJobItem) TableName() string {
	return "assign_job_items"
}

// Estimate represents the estimates table with GORM tags
type Estimate struct {
	ID              int       `gorm:"primaryKey;column:id" json:"id"`
	EstimateNo      int       `gorm:"column:estimate_no;uniqueIndex" json:"estimate_no"`
	ClientID        int       `gorm:"column:client_id;not null" json:"client_id"`
	ProjectID       *int      `gorm:"column:project_id" json:"project_id,omitempty"`
	EstimateDate    string    `gorm:"column:estimate_date" json:"estimate_date"`
	Currency        string    `gorm:"column:currency;not null" json:"currency"`
	LineItems       LineItems `gorm:"column:line_items;type:text" json:"line_items"`
	Subtotal        float64   `gorm:"column:subtotal" json:"subtotal"`
	VatRate         float64   `gorm:"column:vat_rate" json:"vat_rate"`
	VatAmount       float64   `gorm:"column:vat_amount" json:"vat_amount"`
	TotalAmount     float64   `gorm:"column:total_amount" json:"total_amount"`
	Notes           string    `gorm:"column:notes" json:"notes"`
	CeStatus        string    `gorm:"column:ce_status;default:'Draft'" json:"ce_status"`
	CePoStatus      string    `gorm:"column:ce_po_status;default:'pending'" json:"ce_po_status"`
	CeInvoiceStatus string    `gorm:"column:ce_invoice_status;default:'pending'" json:"ce_invoice_status"`
	ToBeInvoiced    bool      `gorm:"column:to_be_invoiced" json:"to_be_invoiced"`
	Invoice         bool      `gorm:"column:invoice" json:"invoice"`
	Invoiced        bool      `gorm:"column:invoiced" json:"invoiced"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Estimate
func (Estimate) TableName() string {
	return "estimates"
}

// PurchaseOrder represents the purchase_orders table with GORM tags
type PurchaseOrder struct {
	ID               int       `gorm:"primaryKey;column:id" json:"id"`
	PoNumber         string    `gorm:"column:po_number" json:"po_number"`
	CostEstimationID int       `gorm:"column:cost_estimation_id;not null;index" json:"cost_estimation_id"`
	ClientID         int       `gorm:"column:client_id" json:"client_id"`
	ProjectID        *int      `gorm:"column:project_id" json:"project_id,omitempty"`
	PoAmount         float64   `gorm:"column:po_amount" json:"po_amount"`
	PoDate           string    `gorm:"column:po_date" json:"po_date"`
	PoDocument       string    `gorm:"column:po_document" json:"po_document"`
	Notes            string    `gorm:"column:notes" json:"notes"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for PurchaseOrder
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Invoice represents the invoices table with GORM tags
type Invoice struct {
	ID            int       `gorm:"primaryKey;column:id" json:"id"`
	InvoiceNo     int       `gorm:"column:invoice_no;uniqueIndex" json:"invoice_no"`
	ClientID      int       `gorm:"column:client_id;not null" json:"client_id"`
	ProjectID     *int      `gorm:"column:project_id" json:"project_id,omitempty"`
	EstimateID    *int      `gorm:"column:estimate_id;index" json:"estimate_id,omitempty"`
	PoID          *int      `gorm:"column:po_id" json:"po_id,omitempty"`
	InvoiceDate   string    `gorm:"column:invoice_date;not null" json:"invoice_date"`
	DueDate       string    `gorm:"column:due_date" json:"due_date"`
	Currency      string    `gorm:"column:currency;not null" json:"currency"`
	LineItems     LineItems `gorm:"column:line_items;type:text" json:"line_items"`
	Subtotal      float64   `gorm:"column:subtotal" json:"subtotal"`
	VatRate       float64   `gorm:"column:vat_rate" json:"vat_rate"`
	VatAmount     float64   `gorm:"column:vat_amount" json:"vat_amount"`
	TotalAmount   float64   `gorm:"column:total_amount" json:"total_amount"`
	Notes         string    `gorm:"column:notes" json:"notes"`
	InvoiceStatus string    `gorm:"column:invoice_status;default:'Active'" json:"invoice_status"`
	PaymentStatus string    `gorm:"column:payment_status;default:'Unpaid'" json:"payment_status"`
	ToBePaid      bool      `gorm:"column:to_be_paid" json:"to_be_paid"`
	Paid          bool      `gorm:"column:paid" json:"paid"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// TimeWorkLog represents the time_work_logs table. The snapshot columns are
// captured from the matching assignment at insert and never rewritten.
type TimeWorkLog struct {
	ID                      int       `gorm:"primaryKey;column:id" json:"id"`
	LogDate                 string    `gorm:"column:log_date" json:"log_date"`
	EmployeeID              *int      `gorm:"column:employee_id;index" json:"employee_id,omitempty"`
	ProductionID            *int      `gorm:"column:production_id;index" json:"production_id,omitempty"`
	JobID                   int       `gorm:"column:job_id;not null;index" json:"job_id"`
	ProjectID               int       `gorm:"column:project_id" json:"project_id"`
	TimeSpent               float64   `gorm:"column:time_spent" json:"time_spent"`
	Overtime                float64   `gorm:"column:overtime" json:"overtime"`
	TotalTime               float64   `gorm:"column:total_time" json:"total_time"`
	TaskDescriptionSnapshot string    `gorm:"column:task_description_snapshot" json:"task_description_snapshot"`
	TimeBudgetSnapshot      string    `gorm:"column:time_budget_snapshot" json:"time_budget_snapshot"`
	CreatedAt               time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for TimeWorkLog
func (TimeWorkLog) TableName() string {
	return "time_work_logs"
}

// Client represents the clients table with GORM tags
type Client struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	ClientName  string    `gorm:"column:client_name;not null" json:"client_name"`
	ContactName string    `gorm:"column:contact_name" json:"contact_name"`
	Email       string    `gorm:"column:email" json:"email"`
	PhoneNo     string    `gorm:"column:phone_no" json:"phone_no"`
	Address     string    `gorm:"column:address" json:"address"`
	City        string    `gorm:"column:city" json:"city"`
	Country     string    `gorm:"column:country" json:"country"`
	TaxNumber   string    `gorm:"column:tax_number" json:"tax_number"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// Brand represents the brands lookup table
type Brand struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	BrandName string    `gorm:"column:brand_name;not null;uniqueIndex" json:"brand_name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Brand
func (Brand) TableName() string {
	return "brands"
}

// Flavour represents the flavours lookup table
type Flavour struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	FlavourName string    `gorm:"column:flavour_name;not null;uniqueIndex" json:"flavour_name"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Flavour
func (Flavour) TableName() string {
	return "flavours"
}

// PackType represents the pack_types lookup table
type PackType struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	PackTypeName string    `gorm:"column:pack_type_name;not null;uniqueIndex" json:"pack_type_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for PackType
func (PackType) TableName() string {
	return "pack_types"
}

// CompanyInfo represents the company_info table
type CompanyInfo struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	CompanyName string    `gorm:"column:company_name;not null" json:"company_name"`
	Address     string    `gorm:"column:address" json:"address"`
	Email       string    `gorm:"column:email" json:"email"`
	PhoneNo     string    `gorm:"column:phone_no" json:"phone_no"`
	TaxNumber   string    `gorm:"column:tax_number" json:"tax_number"`
	BankName    string    `gorm:"column:bank_name" json:"bank_name"`
	BankAccount string    `gorm:"column:bank_account" json:"bank_account"`
	BankIBAN    string    `gorm:"column:bank_iban" json:"bank_iban"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for CompanyInfo
func (CompanyInfo) TableName() string {
	return "company_info"
}

// DocumentCounter issues sequential document numbers. One row per document
// type; last_value is advanced with an atomic increment inside the caller's
// transaction.
type DocumentCounter struct {
	DocumentType string `gorm:"primaryKey;column:document_type" json:"document_type"`
	LastValue    int    `gorm:"column:last_value;not null" json:"last_value"`
}

// TableName specifies the table name for DocumentCounter
func (DocumentCounter) TableName() string {
	return "document_counters"
}

package models

import (
	"time"
)

// APIResponse is the envelope every handler returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// CreateAssignJobRequest is the payload for creating an assignment.
// job_ids stays an array on the wire even though membership is stored
// relationally.
type CreateAssignJobRequest struct {
	ProjectID       int    `json:"project_id" example:"12"`
	JobIDs          []int  `json:"job_ids" example:"14,15"`
	EmployeeID      *int   `json:"employee_id,omitempty" example:"7"`
	ProductionID    *int   `json:"production_id,omitempty" example:"3"`
	TaskDescription string `json:"task_description" example:"Print 500k sleeves"`
	TimeBudget      string `json:"time_budget" example:"16h"`
}

// ProductionAssignRequest moves a batch of assignments to an employee.
type ProductionAssignRequest struct {
	AssignJobIDs []int `json:"assign_job_ids" example:"4,5"`
	EmployeeID   *int  `json:"employee_id" example:"7"`
}

// EmployeeJobActionRequest completes or rejects one job of an assignment.
type EmployeeJobActionRequest struct {
	JobID int `json:"job_id" example:"14"`
}

// BatchAssignActionRequest returns or rejects a batch of assignments.
// When the list is empty the handler falls back to the path parameter.
type BatchAssignActionRequest struct {
	AssignJobIDs []int `json:"assign_job_ids" example:"4,5"`
}

// AssignJobResponse is an assignment with its job membership expanded.
type AssignJobResponse struct {
	ID               int       `json:"id"`
	ProjectID        int       `json:"project_id"`
	JobIDs           []int     `json:"job_ids"`
	EmployeeID       *int      `json:"employee_id,omitempty"`
	ProductionID     *int      `json:"production_id,omitempty"`
	TaskDescription  string    `json:"task_description"`
	TimeBudget       string    `json:"time_budget"`
	AdminStatus      string    `json:"admin_status"`
	ProductionStatus string    `json:"production_status"`
	EmployeeStatus   string    `json:"employee_status"`
	Jobs             []Job     `json:"jobs,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobWithAssignment is a job row joined with its latest assignment's
// task description and time budget.
type JobWithAssignment struct {
	Job
	TaskDescription string `json:"task_description"`
	TimeBudget      string `json:"time_budget"`
}

// ProductionJobRow is one job of a production user's worklist, joined with
// its assignment and project.
type ProductionJobRow struct {
	AssignJobID int    `gorm:"column:assign_job_id" json:"assign_job_id"`
	JobNo       int    `gorm:"column:job_no" json:"job_no"`
	Status      string `gorm:"column:status" json:"status"`
	Priority    string `gorm:"column:priority" json:"priority"`
	PackSize    string `gorm:"column:pack_size" json:"pack_size"`
	ProjectName string `gorm:"column:project_name" json:"project_name"`
	ProjectNo   int    `gorm:"column:project_no" json:"project_no"`
	BrandName   string `gorm:"column:brand_name" json:"brand_name"`
	SubBrand    string `gorm:"column:sub_brand" json:"sub_brand"`
	Flavour     string `gorm:"column:flavour" json:"flavour"`
	PackType    string `gorm:"column:pack_type" json:"pack_type"`
	PackCode    string `gorm:"column:pack_code" json:"pack_code"`
	TotalTime   string `gorm:"column:total_time" json:"total_time"`
	AssignedTo  string `gorm:"column:assigned_to" json:"assigned_to"`
}

// JobHistoryRow is one line of a production user's or employee's job history,
// ordered by project end date.
type JobHistoryRow struct {
	JobNo       int        `gorm:"column:job_no" json:"job_no"`
	ProjectName string     `gorm:"column:project_name" json:"project_name"`
	BrandName   string     `gorm:"column:brand_name" json:"brand_name"`
	SubBrand    string     `gorm:"column:sub_brand" json:"sub_brand"`
	Flavour     string     `gorm:"column:flavour" json:"flavour"`
	PackType    string     `gorm:"column:pack_type" json:"pack_type"`
	PackSize    string     `gorm:"column:pack_size" json:"pack_size"`
	PackCode    string     `gorm:"column:pack_code" json:"pack_code"`
	Priority    string     `gorm:"column:priority" json:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	AssignedTo  string     `gorm:"column:assigned_to" json:"assigned_to"`
	TotalTime   string     `gorm:"column:total_time" json:"total_time"`
	Status      string     `gorm:"column:status" json:"status"`
}

// DeleteBrandsRequest carries the ids for a bulk brand delete.
type DeleteBrandsRequest struct {
	IDs []int `json:"ids" example:"2,5"`
}

// EstimateRequest is the create/update payload for cost estimates.
type EstimateRequest struct {
	ClientID     int        `json:"client_id" example:"3"`
	ProjectID    *int       `json:"project_id,omitempty" example:"12"`
	EstimateDate string     `json:"estimate_date" example:"2025-02-14"`
	Currency     string     `json:"currency" example:"USD"`
	VatRate      float64    `json:"vat_rate" example:"5"`
	LineItems    []LineItem `json:"line_items"`
	Notes        string     `json:"notes"`
	CeStatus     string     `json:"ce_status" example:"Draft"`
}

// InvoiceRequest is the create/update payload for invoices.
type InvoiceRequest struct {
	ClientID      int        `json:"client_id" example:"3"`
	ProjectID     *int       `json:"project_id,omitempty" example:"12"`
	EstimateID    *int       `json:"estimate_id,omitempty" example:"9"`
	PoID          *int       `json:"po_id,omitempty" example:"2"`
	InvoiceDate   string     `json:"invoice_date" example:"2025-03-01"`
	DueDate       string     `json:"due_date" example:"2025-03-31"`
	Currency      string     `json:"currency" example:"USD"`
	VatRate       float64    `json:"vat_rate" example:"5"`
	LineItems     []LineItem `json:"line_items"`
	Notes         string     `json:"notes"`
	InvoiceStatus string     `json:"invoice_status" example:"Active"`
	PaymentStatus string     `json:"payment_status" example:"Unpaid"`
}

// PurchaseOrderRequest is the create/update payload for purchase orders.
type PurchaseOrderRequest struct {
	PoNumber         string  `json:"po_number" example:"PO-2025-081"`
	CostEstimationID int     `json:"cost_estimation_id" example:"9"`
	ClientID         int     `json:"client_id" example:"3"`
	ProjectID        *int    `json:"project_id,omitempty" example:"12"`
	PoAmount         float64 `json:"po_amount" example:"12500"`
	PoDate           string  `json:"po_date" example:"2025-02-20"`
	PoDocument       string  `json:"po_document"`
	Notes            string  `json:"notes"`
}

// TimeWorkLogRequest is the create/update payload for time logs.
type TimeWorkLogRequest struct {
	LogDate      string  `json:"log_date" example:"2025-02-14"`
	EmployeeID   *int    `json:"employee_id,omitempty" example:"7"`
	ProductionID *int    `json:"production_id,omitempty" example:"3"`
	JobID        int     `json:"job_id" example:"14"`
	ProjectID    int     `json:"project_id" example:"12"`
	TimeSpent    float64 `json:"time" example:"7.5"`
	Overtime     float64 `json:"overtime" example:"1.5"`
}

// InvoicePDFData is the flattened view the PDF renderer consumes.
type InvoicePDFData struct {
	Invoice     Invoice     `json:"invoice"`
	Client      Client      `json:"client"`
	Company     CompanyInfo `json:"company"`
	ProjectName string      `json:"project_name"`
}

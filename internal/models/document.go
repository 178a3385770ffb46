package models

import "time"

// Document types
const (
	DocumentInvoice = "invoice"
	DocumentReceipt = "receipt"
)

// Payment types
const (
	PaymentTypeDP        = "dp"
	PaymentTypePelunasan = "pelunasan"
	PaymentTypeCicilan   = "cicilan"
)

// Payment methods
const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
)

// Document statuses
const (
	DocumentStatusPending   = "pending"
	DocumentStatusPaid      = "paid"
	DocumentStatusCancelled = "cancelled"
)

func ValidDocumentType(t string) bool {
	return t == DocumentInvoice || t == DocumentReceipt
}

func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeDP, PaymentTypePelunasan, PaymentTypeCicilan:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodTransfer, PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusPending, DocumentStatusPaid, DocumentStatusCancelled:
		return true
	}
	return false
}

// Document is an invoice or receipt tied to a job.
type Document struct {
	ID                int        `json:"id"`
	JobID             int        `json:"job_id"`
	DocumentNumber    string     `json:"document_number"`
	DocumentType      string     `json:"document_type"`
	PaymentType       string     `json:"payment_type"`
	Amount            float64    `json:"amount"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
	PaymentMethod     string     `json:"payment_method"`
	BankName          string     `json:"bank_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	BankAccountHolder string     `json:"bank_account_holder"`
	Notes             string     `json:"notes"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DocumentWithJob joins the referenced job's display fields.
type DocumentWithJob struct {
	Document
	JobTitle     string `json:"job_title"`
	TrackingCode string `json:"job_tracking_code"`
	ClientName   string `json:"client_name"`
}

type CreateDocumentRequest struct {
	JobID             int        `json:"job_id"`
	DocumentType      string     `json:"document_type"`
	PaymentType       string     `json:"payment_type"`
	Amount            float64    `json:"amount"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
	PaymentMethod     string     `json:"payment_method"`
	BankName          string     `json:"bank_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	BankAccountHolder string     `json:"bank_account_holder"`
	Notes             string     `json:"notes"`
	Status            string     `json:"status"`
}

type UpdateDocumentRequest struct {
	PaymentType       string     `json:"payment_type"`
	Amount            float64    `json:"amount"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
	PaymentMethod     string     `json:"payment_method"`
	BankName          string     `json:"bank_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	BankAccountHolder string     `json:"bank_account_holder"`
	Notes             string     `json:"notes"`
	Status            string     `json:"status"`
}

type DocumentFilter struct {
	Search string
	Type   string
	Status string
	Page   int
	Limit  int
}

type DocumentListResponse struct {
	Documents  []*DocumentWithJob `json:"documents"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

package services

import (
	"context"
	"fmt"
	"strings"

	"tracker-backend/internal/models"
	"tracker-backend/internal/timeutil"
)

// DocumentRepository is satisfied by *repositories.DocumentRepository.
type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error
	Get(ctx context.Context, id int) (*models.DocumentWithJob, error)
	List(ctx context.Context, f models.DocumentFilter) ([]*models.DocumentWithJob, int, error)
	Update(ctx context.Context, d *models.Document) error
	Delete(ctx context.Context, id int) error
}

type DocumentService struct {
	Repo DocumentRepository
	Jobs JobRepository
}

func NewDocumentService(repo DocumentRepository, jobs JobRepository) *DocumentService {
	return &DocumentService{Repo: repo, Jobs: jobs}
}

// documentTypeToken maps the document type to its number-segment token.
func documentTypeToken(documentType string) string {
	if documentType == models.DocumentReceipt {
		return "KWT" // kwitansi
	}
	return "INV"
}

// Create validates the request, resolves the referenced job and generates
// the document number `{tracking}-{INV|KWT}-{unixmilli}`. The number column
// is UNIQUE, so a same-millisecond collision surfaces as an error instead
// of a silent duplicate.
func (s *DocumentService) Create(ctx context.Context, req *models.CreateDocumentRequest) (*models.Document, error) {
	if !models.ValidDocumentType(req.DocumentType) {
		return nil, ValidationError("jenis dokumen tidak valid")
	}
	if !models.ValidPaymentType(req.PaymentType) {
		return nil, ValidationError("jenis pembayaran tidak valid")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ValidationError("metode pembayaran tidak valid")
	}
	if req.Amount <= 0 {
		return nil, ValidationError("jumlah harus lebih dari nol")
	}
	if req.DocumentType == models.DocumentInvoice && req.DueDate == nil {
		return nil, ValidationError("tanggal jatuh tempo wajib untuk invoice")
	}
	if req.PaymentMethod == models.PaymentMethodTransfer {
		if strings.TrimSpace(req.BankName) == "" ||
			strings.TrimSpace(req.BankAccountNumber) == "" ||
			strings.TrimSpace(req.BankAccountHolder) == "" {
			return nil, ValidationError("data rekening bank wajib untuk metode transfer")
		}
	}

	job, err := s.Jobs.Get(ctx, req.JobID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	status := req.Status
	if status == "" {
		// Invoices await payment; receipts record one that already happened.
		if req.DocumentType == models.DocumentInvoice {
			status = models.DocumentStatusPending
		} else {
			status = models.DocumentStatusPaid
		}
	}
	if !models.ValidDocumentStatus(status) {
		return nil, ValidationError("status dokumen tidak valid")
	}

	doc := &models.Document{
		JobID: job.ID,
		DocumentNumber: fmt.Sprintf("%s-%s-%d",
			job.TrackingCode, documentTypeToken(req.DocumentType), timeutil.Now().UnixMilli()),
		DocumentType:      req.DocumentType,
		PaymentType:       req.PaymentType,
		Amount:            req.Amount,
		Description:       req.Description,
		DueDate:           req.DueDate,
		PaymentMethod:     req.PaymentMethod,
		BankName:          strings.TrimSpace(req.BankName),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankAccountHolder: strings.TrimSpace(req.BankAccountHolder),
		Notes:             req.Notes,
		Status:            status,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		// Same-millisecond collision on the UNIQUE number column.
		if isUniqueViolation(err) {
			return nil, ValidationError("nomor dokumen sudah digunakan, coba lagi")
		}
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id int) (*models.DocumentWithJob, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, f models.DocumentFilter) (*models.DocumentListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}

	documents, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &models.DocumentListResponse{
		Documents:  documents,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}, nil
}

// Update is the administrative correction path; the document number and
// type are immutable.
func (s *DocumentService) Update(ctx context.Context, id int, req *models.UpdateDocumentRequest) (*models.Document, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	doc := existing.Document

	if req.PaymentType != "" {
		if !models.ValidPaymentType(req.PaymentType) {
			return nil, ValidationError("jenis pembayaran tidak valid")
		}
		doc.PaymentType = req.PaymentType
	}
	if req.PaymentMethod != "" {
		if !models.ValidPaymentMethod(req.PaymentMethod) {
			return nil, ValidationError("metode pembayaran tidak valid")
		}
		doc.PaymentMethod = req.PaymentMethod
	}
	if req.Amount != 0 {
		if req.Amount <= 0 {
			return nil, ValidationError("jumlah harus lebih dari nol")
		}
		doc.Amount = req.Amount
	}
	if req.Status != "" {
		if !models.ValidDocumentStatus(req.Status) {
			return nil, ValidationError("status dokumen tidak valid")
		}
		doc.Status = req.Status
	}
	if req.Description != "" {
		doc.Description = req.Description
	}
	if req.DueDate != nil {
		doc.DueDate = req.DueDate
	}
	if req.BankName != "" {
		doc.BankName = strings.TrimSpace(req.BankName)
	}
	if req.BankAccountNumber != "" {
		doc.BankAccountNumber = strings.TrimSpace(req.BankAccountNumber)
	}
	if req.BankAccountHolder != "" {
		doc.BankAccountHolder = strings.TrimSpace(req.BankAccountHolder)
	}
	if req.Notes != "" {
		doc.Notes = req.Notes
	}

	if err := s.Repo.Update(ctx, &doc); err != nil {
		return nil, mapNotFound(err)
	}
	return &doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int) error {
	return mapNotFound(s.Repo.Delete(ctx, id))
}

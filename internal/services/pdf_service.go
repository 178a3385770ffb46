package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"tracker-backend/internal/models"
	"tracker-backend/internal/storage"
	"tracker-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFService renders documents to printable invoices/receipts. Rendered
// files are archived to object storage when an archive store is configured.
type PDFService struct {
	Documents DocumentRepository
	Settings  CompanySettingsRepository
	Archive   *storage.ArchiveStore
}

func NewPDFService(documents DocumentRepository, settings CompanySettingsRepository, archive *storage.ArchiveStore) *PDFService {
	return &PDFService{Documents: documents, Settings: settings, Archive: archive}
}

func paymentTypeLabel(t string) string {
	switch t {
	case models.PaymentTypeDP:
		return "Uang Muka (DP)"
	case models.PaymentTypePelunasan:
		return "Pelunasan"
	case models.PaymentTypeCicilan:
		return "Cicilan"
	}
	return t
}

func paymentMethodLabel(m string) string {
	switch m {
	case models.PaymentMethodTransfer:
		return "Transfer Bank"
	case models.PaymentMethodCash:
		return "Tunai"
	case models.PaymentMethodCard:
		return "Kartu"
	}
	return m
}

func formatRupiah(amount float64) string {
	// Rough thousands grouping, Indonesian style: Rp 1.500.000
	s := fmt.Sprintf("%.0f", amount)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "Rp " + b.String()
}

// Render produces the PDF bytes for a document.
func (s *PDFService) Render(ctx context.Context, id int) ([]byte, string, error) {
	doc, err := s.Documents.Get(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err)
	}

	company, err := s.companySettings(ctx)
	if err != nil {
		return nil, "", err
	}

	title := "INVOICE"
	if doc.DocumentType == models.DocumentReceipt {
		title = "KWITANSI"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 9, company.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(180, 5, company.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, fmt.Sprintf("Telp: %s   Email: %s", company.Phone, company.Email), "", 1, "L", false, 0, "")
	if company.TaxNumber != "" {
		pdf.CellFormat(180, 5, fmt.Sprintf("NPWP: %s", company.TaxNumber), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(180, 10, title, "1", 1, "C", true, 0, "")
	pdf.Ln(3)

	// Document and job details
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(90, 6, fmt.Sprintf("Nomor: %s", doc.DocumentNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 6, fmt.Sprintf("Tanggal: %s", timeutil.FormatWIB(doc.CreatedAt, timeutil.DateLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 6, fmt.Sprintf("Pekerjaan: %s", doc.JobTitle), "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 6, fmt.Sprintf("Kode Tracking: %s", doc.TrackingCode), "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 6, fmt.Sprintf("Klien: %s", doc.ClientName), "", 0, "L", false, 0, "")
	if doc.DueDate != nil {
		pdf.CellFormat(90, 6, fmt.Sprintf("Jatuh Tempo: %s", timeutil.FormatWIB(*doc.DueDate, timeutil.DateLayout)), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(90, 6, "", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Amount table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Keterangan", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Jenis Pembayaran", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Jumlah", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	description := doc.Description
	if len(description) > 50 {
		description = description[:47] + "..."
	}
	pdf.CellFormat(90, 7, description, "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, paymentTypeLabel(doc.PaymentType), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 7, formatRupiah(doc.Amount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(135, 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 8, formatRupiah(doc.Amount), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Payment instructions
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Metode Pembayaran: %s", paymentMethodLabel(doc.PaymentMethod)), "", 1, "L", false, 0, "")
	if doc.PaymentMethod == models.PaymentMethodTransfer {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(180, 5, fmt.Sprintf("Bank %s  No. Rek: %s  a.n. %s",
			doc.BankName, doc.BankAccountNumber, doc.BankAccountHolder), "", 1, "L", false, 0, "")
	}
	if doc.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(180, 5, "Catatan: "+doc.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := doc.DocumentNumber + ".pdf"
	s.archive(filename, buf.Bytes())

	return buf.Bytes(), filename, nil
}

func (s *PDFService) companySettings(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		// Settings row not written yet; render with the fixed defaults.
		return models.DefaultCompanySettings(), nil
	}
	return settings, nil
}

// archive uploads the rendered PDF in the background, best-effort.
func (s *PDFService) archive(filename string, data []byte) {
	if s.Archive == nil {
		return
	}
	go func() {
		if err := s.Archive.Upload(context.Background(), "documents/"+filename, data, "application/pdf"); err != nil {
			log.Printf("[Archive] upload %s failed: %v", filename, err)
		}
	}()
}

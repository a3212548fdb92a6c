package taxfilings

import (
	"time"

	"github.com/joe700619/SmartFirm/internal/pkg/response"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type vatRecordRequest struct {
	CompanyID           string  `json:"company_id"`
	FilingYear          string  `json:"filing_year"`
	FilingPeriod        int     `json:"filing_period"`
	InvoiceReceivedDate string  `json:"invoice_received_date"`
	ReplyTime           string  `json:"reply_time"`
	TaxDeadline         string  `json:"tax_deadline"`
	TaxPaymentCompleted string  `json:"tax_payment_completed"`
	Source              string  `json:"source"`
	DeclarationURL      *string `json:"declaration_url"`
	PaymentSlipURL      *string `json:"payment_slip_url"`
}

func optionalDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, ok := validation.ParseDate(s)
	if !ok {
		return nil, false
	}
	return &t, true
}

func (r vatRecordRequest) toInput() (VATRecordInput, string) {
	companyID, err := uuid.Parse(r.CompanyID)
	if err != nil {
		return VATRecordInput{}, "Invalid company_id format (must be a valid UUID)"
	}
	invoice, ok := optionalDate(r.InvoiceReceivedDate)
	if !ok {
		return VATRecordInput{}, "Invalid invoice_received_date format (must be YYYY-MM-DD)"
	}
	reply, ok := optionalDate(r.ReplyTime)
	if !ok {
		return VATRecordInput{}, "Invalid reply_time format (must be YYYY-MM-DD)"
	}
	deadline, ok := optionalDate(r.TaxDeadline)
	if !ok {
		return VATRecordInput{}, "Invalid tax_deadline format (must be YYYY-MM-DD)"
	}
	return VATRecordInput{
		CompanyID:           companyID,
		FilingYear:          r.FilingYear,
		FilingPeriod:        r.FilingPeriod,
		InvoiceReceivedDate: invoice,
		ReplyTime:           reply,
		TaxDeadline:         deadline,
		TaxPaymentCompleted: r.TaxPaymentCompleted,
		Source:              r.Source,
		DeclarationURL:      r.DeclarationURL,
		PaymentSlipURL:      r.PaymentSlipURL,
	}, ""
}

func mapFilingErr(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidPeriod, ErrUnknownTaxReply, ErrUnknownSource:
		return response.Error(c, err.Error(), 400, nil)
	case ErrRecordNotFound:
		return response.Error(c, err.Error(), 404, nil)
	default:
		return response.Error(c, "Internal Server Error", 500, nil)
	}
}

// ListVAT GET /api/v1/tax-filings/vat?year=&period=
func (h *Handlers) ListVAT(c *fiber.Ctx) error {
	records, err := h.Service.ListVATRecords(c.Context(), c.Query("year"), c.QueryInt("period", 0))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "VAT records fetched successfully", records, nil)
}

// GetVAT GET /api/v1/tax-filings/vat/:id
func (h *Handlers) GetVAT(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	record, err := h.Service.GetVATRecord(c.Context(), id)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "VAT record fetched successfully", record, nil)
}

// CreateVAT POST /api/v1/tax-filings/vat
func (h *Handlers) CreateVAT(c *fiber.Ctx) error {
	var req vatRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	record, err := h.Service.CreateVATRecord(c.Context(), in)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.SuccessCreated(c, "VAT record created successfully", record, nil)
}

// UpdateVAT PUT /api/v1/tax-filings/vat/:id
func (h *Handlers) UpdateVAT(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req vatRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	record, err := h.Service.UpdateVATRecord(c.Context(), id, in)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "VAT record updated successfully", record, nil)
}

// DeleteVAT DELETE /api/v1/tax-filings/vat/:id
func (h *Handlers) DeleteVAT(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.DeleteVATRecord(c.Context(), id); err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "VAT record deleted successfully", nil, nil)
}

// SendVAT POST /api/v1/tax-filings/vat/:id/send
func (h *Handlers) SendVAT(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	row, err := h.Service.SendVATToCustomer(c.Context(), id)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "Filing data sent to customer", row, nil)
}

type incomeTaxRecordRequest struct {
	CompanyID           string  `json:"company_id"`
	FilingYear          string  `json:"filing_year"`
	ReplyTime           string  `json:"reply_time"`
	TaxDeadline         string  `json:"tax_deadline"`
	TaxPaymentCompleted string  `json:"tax_payment_completed"`
	Source              string  `json:"source"`
	DeclarationURL      *string `json:"declaration_url"`
	PaymentSlipURL      *string `json:"payment_slip_url"`
}

func (r incomeTaxRecordRequest) toInput() (IncomeTaxRecordInput, string) {
	companyID, err := uuid.Parse(r.CompanyID)
	if err != nil {
		return IncomeTaxRecordInput{}, "Invalid company_id format (must be a valid UUID)"
	}
	reply, ok := optionalDate(r.ReplyTime)
	if !ok {
		return IncomeTaxRecordInput{}, "Invalid reply_time format (must be YYYY-MM-DD)"
	}
	deadline, ok := optionalDate(r.TaxDeadline)
	if !ok {
		return IncomeTaxRecordInput{}, "Invalid tax_deadline format (must be YYYY-MM-DD)"
	}
	return IncomeTaxRecordInput{
		CompanyID:           companyID,
		FilingYear:          r.FilingYear,
		ReplyTime:           reply,
		TaxDeadline:         deadline,
		TaxPaymentCompleted: r.TaxPaymentCompleted,
		Source:              r.Source,
		DeclarationURL:      r.DeclarationURL,
		PaymentSlipURL:      r.PaymentSlipURL,
	}, ""
}

// ListIncomeTax GET /api/v1/tax-filings/income-tax?year=
func (h *Handlers) ListIncomeTax(c *fiber.Ctx) error {
	records, err := h.Service.ListIncomeTaxRecords(c.Context(), c.Query("year"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Income tax records fetched successfully", records, nil)
}

// GetIncomeTax GET /api/v1/tax-filings/income-tax/:id
func (h *Handlers) GetIncomeTax(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	record, err := h.Service.GetIncomeTaxRecord(c.Context(), id)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "Income tax record fetched successfully", record, nil)
}

// CreateIncomeTax POST /api/v1/tax-filings/income-tax
func (h *Handlers) CreateIncomeTax(c *fiber.Ctx) error {
	var req incomeTaxRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	record, err := h.Service.CreateIncomeTaxRecord(c.Context(), in)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.SuccessCreated(c, "Income tax record created successfully", record, nil)
}

// UpdateIncomeTax PUT /api/v1/tax-filings/income-tax/:id
func (h *Handlers) UpdateIncomeTax(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req incomeTaxRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	record, err := h.Service.UpdateIncomeTaxRecord(c.Context(), id, in)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "Income tax record updated successfully", record, nil)
}

// DeleteIncomeTax DELETE /api/v1/tax-filings/income-tax/:id
func (h *Handlers) DeleteIncomeTax(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.DeleteIncomeTaxRecord(c.Context(), id); err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "Income tax record deleted successfully", nil, nil)
}

// SendIncomeTax POST /api/v1/tax-filings/income-tax/:id/send
func (h *Handlers) SendIncomeTax(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	row, err := h.Service.SendIncomeTaxToCustomer(c.Context(), id)
	if err != nil {
		return mapFilingErr(c, err)
	}
	return response.Success(c, "Filing data sent to customer", row, nil)
}

// ListDownloads GET /api/v1/tax-filings/downloads?company_id=
func (h *Handlers) ListDownloads(c *fiber.Ctx) error {
	rows, err := h.Service.ListDownloads(c.Context(), c.Query("company_id"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Download data fetched successfully", rows, nil)
}
